// Package main (cmd/identity-client) is the Identity Holder command line
// client for the signature registry.
//
// Commands (short aliases in parentheses):
//
//	generate-keys (gk)                          write private_key.pem and public_key.pem to --key-dir
//	submit-public-key (spk) <password>          register public_key.pem with the server
//	sign-message (sm) <message>                 print the message and its base64 signature
//	verify-message (vm) <message> <signature>   print the server's {"valid": ...} response
//	help (h)
//
// The server address comes from --server or REGISTRY_SERVER and defaults to
// http://localhost:3000. Server errors are printed with their HTTP status and
// the process exits non-zero.
//
// Example:
//
//	identity-client gk
//	identity-client spk secret123
//	identity-client sm hello-world
//	identity-client vm hello-world <signature>
package main
