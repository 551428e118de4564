// Package reqctx carries ambient request-scoped values through a
// request's whole call chain without threading flags through every
// function signature.
//
// The canonical use is demo mode: the HTTP boundary attaches a frame
// once, and every downstream component - the service registry in
// particular - consults reqctx.DemoMode(ctx) to decide between real
// and simulated plugins. Frames ride on context.Context, so they
// propagate across goroutines spawned with the same context, nested
// frames restore the outer frame on exit, and concurrent requests are
// isolated by construction.
package reqctx
