// Package api implements the HTTP REST API of the scoring server.
//
// New(store, recorder, alerts, limits) returns an http.Handler that serves:
//
//	GET  /api/v1/health              status and live dataset count
//	GET  /api/v1/rules               contribution table and level bands
//	POST /api/v1/score               score one record (with drivers)
//	POST /api/v1/score/batch         score {records:[...]} in order
//	GET  /api/v1/datasets            live generated datasets (no rows)
//	POST /api/v1/datasets            generate + score {records, seed}
//	GET  /api/v1/datasets/{id}       one dataset with all scored rows
//	GET  /api/v1/datasets/{id}/csv   CSV export; ?labels=false drops WSS columns
//	GET  /api/v1/alerts              firing and recently resolved alerts
//
// Invalid attributes return 422 with the attribute, reason and, for batches,
// the record index. Wrong methods return 405. Every generated dataset is
// passed to the alert engine. JSON types live in types.go; no external HTTP
// framework is used.
package api
