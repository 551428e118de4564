// Package demo provides deterministic simulated vendor services.
//
// Three services ship out of the box: a lighting bridge, a heating
// system, and a music service whose pairing flow requires a 2FA code
// (fixed at "123456"). Fixture data never changes between runs, which
// makes demo mode usable for automated tests and walkthroughs alike.
//
// Each constructed Service is independently stateful, so the same
// constructor can back both the real and the demo slot of the registry
// without the two sharing connection state.
package demo
