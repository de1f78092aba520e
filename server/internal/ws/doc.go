// Package ws streams the live dataset list to WebSocket clients.
//
// Hub.ServeHTTP upgrades the connection and sends the current list at once;
// Hub.Run then pushes it to every client each interval until ctx is done.
//
//	{"event": "datasets", "data": {"generated_at": "...", "datasets": [...]}}
//
// The entries match GET /api/v1/datasets. The upgrader accepts all origins;
// restrict them at the reverse proxy.
package ws
