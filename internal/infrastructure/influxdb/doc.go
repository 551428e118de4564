// Package influxdb records Hearth's aggregation statistics over time.
//
// Each Home snapshot can write a home_summary point (light counts,
// room count, scene count) and the session manager can record active
// session counts. This gives dashboards a history of the home without
// Hearth itself caching derived views.
//
// InfluxDB is optional; when disabled in config, Connect returns
// ErrDisabled and callers run without stats history.
package influxdb
