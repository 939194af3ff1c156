// Package interfaces defines the core interfaces and wire types of the
// signature registry.
//
// # Interfaces
//
// KeyRegistry: the server side. Holds one password credential and one
// registered RSA public key, and verifies signatures against that key.
//
// KeyStore: the client side. Persists the Identity Holder's key pair.
//
// # Wire Types
//
//   - Registration: {"publicKey": "<PEM>"}
//   - SignatureRequest: {"message": "...", "signature": "<base64>"}
//   - VerificationResult: {"valid": true|false}
package interfaces
