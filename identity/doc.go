/*
Package identity implements the Identity Holder: the client side of the
signature registry.

A Holder generates a key pair into its key store, submits the public half to
the registry with the service password, signs messages locally with the
private half, and asks the registry to verify a message and signature.
The private key never leaves the key store except to be used by Sign.
*/
package identity
