// Package binary runs the vestauth engine as an external process and turns
// its output into Go values.
//
// The engine does all of the cryptography. This package only prepares its
// arguments, starts it, and classifies how it ended.
//
// # Pipeline
//
// Every call goes through the same four steps:
//
//  1. Key material is normalized to JSON text (SerializeKey)
//  2. An argument vector is assembled (BuildCommand)
//  3. The engine is started without a shell (Invoker, ExecInvoker)
//  4. The outcome is parsed (ParseOutcome)
//
// # Commands
//
//	vestauth agent headers <method> <uri> --private-jwk <json> --uid <id>
//	vestauth tool verify <method> <uri> --signature <sig> --signature-input <input> --signature-agent <agent>
//	vestauth primitives verify <method> <uri> --signature <sig> --signature-input <input> --public-jwk <json>
//
// Arguments are passed as separate argv entries, never joined into a shell
// string, so header values containing quotes, semicolons, or spaces reach
// the engine unchanged. Absent values are passed as empty strings.
//
// # Key Material
//
// Keys may be passed as:
//
//   - a string, []byte or json.RawMessage that already holds JSON
//   - a map or slice, encoded with encoding/json
//   - a Mapper, whose AsMap result is encoded
//   - a json.Marshaler such as a go-jose JSONWebKey
//
// The first matching shape wins. A value implementing both Mapper and
// json.Marshaler always goes through AsMap, and an AsMap error is returned
// as is. Use RawText, Structured, or Convertible to state the shape
// explicitly instead.
//
// # Usage
//
//	b := binary.New(binary.WithExecutable("/usr/local/bin/vestauth"))
//
//	result, err := b.ToolVerify(ctx, binary.ToolVerifyArgs{
//	    HTTPMethod:     "GET",
//	    URI:            "https://api.example.com/whoami",
//	    Signature:      sig,
//	    SignatureInput: sigInput,
//	    SignatureAgent: sigAgent,
//	})
//	if err != nil {
//	    return err
//	}
//	uid, _ := result.String("uid")
//
// # Error Handling
//
// Every failure is an *Error. Its Error() text is exactly the engine's
// diagnostic: stderr, or stdout when stderr is empty. Use errors.Is with
// ErrArgumentShape, ErrProcessFailure, or ErrProtocolViolation to branch on
// the kind. Nothing is retried.
//
// A successful run whose JSON says {"success": false} is not an error; read
// it with Result.Verdict.
//
// # Concurrency
//
// A Binary holds no mutable state and starts one process per call, so it is
// safe to share. The context passed to each call bounds the process; the
// package adds no timeout of its own.
package binary
