/*
Package clients provides the HTTP client the Identity Holder uses to talk to
the signature registry.

RegistryClient implements api.RegistryProvider:

  - SubmitPublicKey posts {"publicKey": ...} to /submit-public-key with
    "Authorization: Basic base64(password)".
  - VerifyMessage posts {"message": ..., "signature": ...} to
    /verify-message and returns the decoded {"valid": ...} response.

Non-200 responses are returned as *api.RequestError with the server's status
and message, so callers can surface them verbatim.

MockRegistryProvider is a testify mock of the same interface.
*/
package clients
