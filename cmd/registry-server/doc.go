// Package main (cmd/registry-server) runs the signature registry service.
//
// The server holds one bcrypt-hashed registration password and at most one
// registered RSA public key, kept in memory only. It exposes:
//
//	POST /submit-public-key   Authorization: Basic base64(password)
//	                          {"publicKey": "<PEM>"}
//	POST /verify-message      {"message": "...", "signature": "<base64>"}
//
// plus /livez, /readyz, /drain and /undrain, and Prometheus metrics on
// --metrics-addr.
//
// The password is taken from the first positional argument, --password or
// REGISTRY_PASSWORD, in that order. The server refuses to start without one.
// It listens on --listen-addr, or on the port from --port / PORT (3000 by
// default). An optional YAML file given with --config supplies defaults for
// listen_addr, metrics_addr, bcrypt_cost, drain_seconds, pprof and log.
//
// Example:
//
//	registry-server secret123
//	PORT=8080 REGISTRY_PASSWORD=secret123 registry-server --log-json
package main
