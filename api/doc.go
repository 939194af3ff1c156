/*
Package api provides the HTTP surface of the signature registry.

This package is organized into three subpackages:

1. handlers - Request processing for key registration and signature verification
2. servers - HTTP server configuration and lifecycle management
3. clients - Client library used by the Identity Holder

The package itself holds the wire types, route paths, response texts and the
password Authorization header codec shared by the server and the client.

# API Structure

	POST /submit-public-key
	    Authorization: Basic base64(password)
	    {"publicKey": "<PEM>"}

	POST /verify-message
	    {"message": "...", "signature": "<base64>"}
	    -> {"valid": true|false}

Registration is password gated; verification is public.

# Security Model

The password is carried in the Authorization header rather than the body and
is never logged. Transport encryption is expected from an outer layer.
*/
package api
