// Package keystore keeps the Identity Holder's key pair on the local file
// system as two PEM files: private_key.pem (mode 0600) and public_key.pem
// (mode 0644).
package keystore
