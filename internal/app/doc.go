// Package app wires configuration, logging, telemetry, the observation
// store, the service layer and the HTTP transport into a runnable server.
// It owns the middleware chain and the route table; nothing below this
// package knows the full shape of the application.
package app
