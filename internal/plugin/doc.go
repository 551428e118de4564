// Package plugin defines the uniform vendor integration surface and
// the registry that resolves service ids to plugin instances.
//
// Each vendor service (lighting bridge, heating system, music
// provider) implements the Plugin interface. The registry holds one
// live instance per service plus an optional demo variant with
// independent state; a request-scoped demo flag picks which variant a
// lookup returns, so demo mode swaps every downstream call without
// threading a flag through intermediate signatures.
//
// Unknown service ids and missing demo variants resolve to nil. The
// boundary layer maps that to a service-unavailable response; it is
// never a crash.
package plugin
