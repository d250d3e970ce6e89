// Package server provides HTTP middleware that verifies vestauth signatures
// on incoming requests.
//
// The middleware hands each request's method, URL, and Signature,
// Signature-Input, and Signature-Agent headers to the vestauth engine
// (`vestauth tool verify`) and only calls the wrapped handler when the
// engine accepts them.
//
// # Features
//
//   - Verification through the tool package, so the engine decides validity
//   - Verified result and agent uid propagated through the request context
//   - Optional verification mode (allow unsigned requests)
//   - CORS preflight support (OPTIONS requests)
//   - Custom error handler support
//   - Request body preservation
//
// # Basic Usage
//
//	middleware := server.NewAuthMiddleware(nil) // runs "vestauth" from PATH
//
//	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	    uid, ok := server.UIDFromContext(r.Context())
//	    if !ok {
//	        http.Error(w, "Unauthorized", http.StatusUnauthorized)
//	        return
//	    }
//	    fmt.Fprintf(w, "Authenticated as: %s", uid)
//	})
//
//	http.Handle("/api/", middleware.Wrap(handler))
//
// # Optional Verification
//
//	// Allow requests without Signature and Signature-Input to pass through
//	middleware.SetOptional(true)
//
// Requests that do carry signature headers are still verified in optional
// mode, and rejected if verification fails.
//
// # Custom Error Handler
//
//	middleware.SetErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
//	    var engineErr *binary.Error
//	    if errors.As(err, &engineErr) && engineErr.Kind == binary.KindProtocolViolation {
//	        http.Error(w, "verifier unavailable", http.StatusBadGateway)
//	        return
//	    }
//	    http.Error(w, "Unauthorized", http.StatusUnauthorized)
//	})
//
// # How It Works
//
// For each request the middleware:
//
//  1. Skips verification for OPTIONS requests (CORS preflight)
//  2. In optional mode, skips requests without signature headers
//  3. Buffers the body so downstream handlers can still read it
//  4. Runs the engine through tool.Verifier.VerifyRequest
//  5. Treats an engine error or a "success": false verdict as a failure
//  6. Stores the engine result in the request context
//  7. Calls the next handler
//
// Outside optional mode, a request without signature headers is still sent
// to the engine, which reports what is missing.
//
// Failures go to the error handler, which by default answers 401
// Unauthorized. A "success": false verdict surfaces as ErrSignatureRejected.
//
// # Context Propagation
//
//	func myHandler(w http.ResponseWriter, r *http.Request) {
//	    result, _ := server.ResultFromContext(r.Context())
//	    kid, _ := result.String("kid")
//	    ...
//	}
//
// # Thread Safety
//
// The middleware is safe for concurrent use once configured. Call
// SetOptional and SetErrorHandler before serving requests.
//
// # Performance Considerations
//
//   - Every verified request starts one engine process
//   - Body buffering requires memory proportional to body size
package server
