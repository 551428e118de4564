// Package home assembles the unified multi-vendor Home snapshot.
//
// Rooms, devices, and scenes arrive from each vendor service in its
// own identifier space; the builder maps vendor rooms onto canonical
// home rooms and computes derived statistics (light counts, average
// brightness, scene totals) at construction time.
//
// Everything here is a derived view. Nothing is persisted and nothing
// is cached; each aggregation pass recomputes from live service data.
package home
