// Package registry implements the server-side state of the signature
// registry: one bcrypt password credential and one registered RSA public
// key.
//
// Registration is password gated and last-writer-wins. Verification is a
// pure function of the message, the signature and the key registered at
// the time of the call.
//
// Invariant: the only way to set the registered key is Register with a
// password that matches the credential.
package registry
