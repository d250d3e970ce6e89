// Package tool verifies signed HTTP requests that arrive at a tool or
// provider.
//
// A tool receives a request carrying Signature, Signature-Input, and
// Signature-Agent headers. This package hands those values, together with
// the request method and URL, to the vestauth engine and returns the JSON
// object the engine printed.
//
// # Verifying Headers
//
//	t := tool.New(nil) // runs "vestauth" from PATH
//
//	result, err := t.Verify(ctx, "GET", "https://api.example.com/whoami", map[string]string{
//	    "Signature":       sig,
//	    "Signature-Input": sigInput,
//	    "Signature-Agent": sigAgent,
//	})
//	if err != nil {
//	    // the engine rejected the request or could not run
//	    return err
//	}
//	uid, _ := result.String("uid")
//
// # Header Lookup
//
// Verify looks each field up under its canonical name ("Signature-Input")
// and then its lowercase name ("signature-input"). Other spellings are not
// matched; use VerifyRequest or FromHTTPHeader when you have an http.Header.
//
// No presence check is made locally. A request without signature headers is
// still sent to the engine, with empty values, and the engine reports the
// problem.
//
// # Verifying Server Requests
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    result, err := t.VerifyRequest(r.Context(), r)
//	    ...
//	}
//
// The URL passed to the engine is rebuilt from the Host header and whether
// the connection used TLS. Behind a TLS-terminating proxy, build the URI
// yourself and call Verify.
//
// # Verdicts
//
// A nil error means the engine ran and printed a JSON object. When that
// object carries "success": false the signature was not accepted even
// though no error was returned; check Result.Verdict. The server package
// does this for you.
//
// # Provider
//
// Provider and NewProvider are aliases kept for callers using the older
// name. Both run the same `tool verify` engine command.
package tool
