// Package mqtt provides Hearth's outbound event bus client.
//
// Hearth publishes room mapping changes, aggregated home summaries and
// its own online/offline status to an MQTT broker so wall panels,
// automations and sibling services can react without polling the API.
// The client wraps paho.mqtt.golang with auto-reconnect, LWT offline
// detection and publish validation.
//
// MQTT is optional: when disabled in config, publishers receive a nil
// client and skip publishing. No inbound subscriptions exist in this
// service; Hearth only fans out.
package mqtt
