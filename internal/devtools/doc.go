// Package devtools serves a live inspector for a reactive runtime.
//
// The inspector exposes these endpoints over HTTP:
//
//	GET /stats          runtime counters as JSON
//	GET /events         websocket stream of runtime events
//	GET /events/recent  the last N events as JSON
//	GET /metrics        Prometheus exposition for a registry
//
// /stats and /events/recent answer in MessagePack instead of JSON when the
// request sends Accept: application/msgpack or ?format=msgpack.
//
// A Hub is a reactive.Observer. Register it with reactive.WithObserver and
// every flush, effect run, resource load and reconcile is fanned out to the
// connected websocket clients.
package devtools
