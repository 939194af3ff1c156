/*
Package handlers implements request processing for the signature registry.

# Handler

Handler serves the two registry endpoints:

  - POST /submit-public-key: password-gated registration of the single
    public key. The newest successful registration replaces any previous key.
  - POST /verify-message: public verification of a (message, signature)
    pair against the registered key.

# Error Mapping

Registry errors are mapped with errors.Is:

  - registry.ErrUnauthenticated, registry.ErrInvalidCredential -> 401
  - cryptoutils.ErrMissingInput, cryptoutils.ErrMalformedSignature -> 400
  - everything else -> 500 with a generic body; details go to the log

A signature that does not match is not an error and is answered with
{"valid": false}.
*/
package handlers
