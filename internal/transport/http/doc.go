// Package http implements the HTTP handlers for the indicator analytics
// API. It is a thin layer between chi routing and the service layer:
// handlers parse and validate requests, delegate to services, and render
// JSON responses, with every error path going through the centralized
// RFC 7807 error handler.
//
// A typical request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → Service → Store
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
//
// Handlers never compute statistics themselves; the analytics engine is
// reached only through the service layer.
package http
