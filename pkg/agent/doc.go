// Package agent signs outbound HTTP requests for a vestauth agent identity.
//
// The agent holds a private JWK and a uid. Signing is done by the vestauth
// engine; this package hands it the request line and key and returns the
// header fields the engine produced.
//
// # Signing HTTP Requests
//
// Use SignRequest to sign and decorate a request in one step:
//
//	a := agent.New(nil) // runs "vestauth" from PATH
//	req, _ := http.NewRequest("GET", "https://api.example.com/whoami", nil)
//
//	err := a.SignRequest(ctx, req, privateJWK, "agent-123")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// This sets the Signature, Signature-Input, and Signature-Agent headers.
//
// # Getting Headers Only
//
// When the request is built by another library, ask for the headers and
// attach them yourself:
//
//	headers, err := a.Headers(ctx, agent.HeadersInput{
//	    HTTPMethod: "POST",
//	    URI:        "https://api.example.com/tasks",
//	    PrivateJWK: privateJWK,
//	    ID:         "agent-123",
//	})
//
// Headers keeps only string values. HeadersResult returns the engine's JSON
// object as printed.
//
// # Private Keys
//
// PrivateJWK accepts:
//
//   - JSON text (string, []byte, json.RawMessage), passed through as is
//   - a map[string]any or other map or slice
//   - a value with AsMap() (map[string]any, error)
//   - a json.Marshaler, for example a go-jose JSONWebKey
//
// A nil pointer, or anything else, fails with binary.ErrArgumentShape before the engine runs.
//
// # Error Handling
//
// Engine failures come back as *binary.Error whose text is the engine's
// own diagnostic. Input errors (nil request, canceled context) are plain
// wrapped errors.
package agent
