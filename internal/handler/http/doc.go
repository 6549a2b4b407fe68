// Package http implements the HTTP transport layer of the vault server.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging, tracing, and client address
// propagation are all handled at this layer before requests are forwarded
// to the service layer.
//
// The transport is deliberately thin: no cryptography and no session logic
// lives here. Handlers decode a request, hand it to a service, and map the
// resulting error to a status code.
package http
