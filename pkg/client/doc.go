// Package client provides an HTTP client that signs every outgoing request as
// a vestauth agent.
//
// The client wraps a standard http.Client. Before each request is sent, the
// agent signer asks the vestauth engine for Signature, Signature-Input, and
// Signature-Agent headers covering the request method and full URL, and sets
// them on the request.
//
// # Basic Usage
//
//	key, _ := jwk.LoadPrivate("agent.jwk.json")
//	c := client.NewClient("agent-123", key, nil, nil)
//
//	ctx := context.Background()
//	resp, err := c.Post(ctx, "https://api.example.com/tasks", []byte(`{"task": "process"}`))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer resp.Body.Close()
//
// The private key may be anything the binary package accepts as key
// material: JSON text, a map, a value with AsMap, or a json.Marshaler such as
// jose.JSONWebKey.
//
// # Custom Signer and HTTP Client
//
//	b := binary.New(binary.WithExecutable("/opt/vestauth/bin/vestauth"))
//	c := client.NewClient("agent-123", key, agent.New(b), &http.Client{
//	    Timeout: 30 * time.Second,
//	})
//
// # Custom Requests
//
//	req, _ := http.NewRequest("PUT", "https://api.example.com/data", body)
//	req.Header.Set("Content-Type", "application/json")
//	resp, err := c.Do(ctx, req)
//
// # Errors
//
// Signing failures are wrapped with "failed to sign request". The engine's
// own error is still reachable with errors.As:
//
//	var engineErr *binary.Error
//	if errors.As(err, &engineErr) {
//	    log.Printf("vestauth said: %s", engineErr.Message)
//	}
//
// No request is sent when signing fails.
package client
