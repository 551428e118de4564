package reqctx

import "context"

// ctxKey is a private type for the frame context key to avoid collisions.
type ctxKey struct{}

// Frame holds the request-scoped values carried through one inbound
// request's call chain. The demo flag is the only well-known value;
// Values carries anything else a boundary layer wants downstream.
type Frame struct {
	DemoMode bool
	Values   map[string]any
}

// clone returns a copy of the frame with its own values map.
// Frames are never mutated in place once attached to a context.
func (f Frame) clone() Frame {
	c := Frame{DemoMode: f.DemoMode}
	if len(f.Values) > 0 {
		c.Values = make(map[string]any, len(f.Values))
		for k, v := range f.Values {
			c.Values[k] = v
		}
	}
	return c
}

// WithFrame returns a context carrying the given frame.
//
// Because contexts are immutable, a nested frame shadows the outer one
// for the duration of the derived context and the outer frame is
// restored on exit by construction - there is no global state to pop,
// and sibling requests can never observe each other's frames.
func WithFrame(ctx context.Context, f Frame) context.Context {
	return context.WithValue(ctx, ctxKey{}, f.clone())
}

// frameFrom extracts the current frame, or a zero frame if none is attached.
func frameFrom(ctx context.Context) (Frame, bool) {
	f, ok := ctx.Value(ctxKey{}).(Frame)
	return f, ok
}

// WithDemoMode returns a context whose frame has the demo flag set.
// Any other frame values are preserved.
func WithDemoMode(ctx context.Context, demo bool) context.Context {
	f, _ := frameFrom(ctx)
	f = f.clone()
	f.DemoMode = demo
	return WithFrame(ctx, f)
}

// DemoMode reports whether the current request runs against demo
// plugins. False when no frame is attached.
func DemoMode(ctx context.Context) bool {
	f, ok := frameFrom(ctx)
	return ok && f.DemoMode
}

// WithValue returns a context whose frame carries key=value alongside
// the existing frame contents.
func WithValue(ctx context.Context, key string, value any) context.Context {
	f, _ := frameFrom(ctx)
	f = f.clone()
	if f.Values == nil {
		f.Values = make(map[string]any, 1)
	}
	f.Values[key] = value
	return WithFrame(ctx, f)
}

// Value returns a frame value by key. The second return is false when
// no frame is attached or the key is absent.
func Value(ctx context.Context, key string) (any, bool) {
	f, ok := frameFrom(ctx)
	if !ok || f.Values == nil {
		return nil, false
	}
	v, ok := f.Values[key]
	return v, ok
}

// Run executes fn with the given frame attached to a derived context.
//
// This is the scoped-acquisition primitive: the frame exists only for
// the duration of fn, including all functions fn calls with the derived
// context, and the caller's context is untouched on every exit path
// (normal return, error, or panic).
func Run(ctx context.Context, f Frame, fn func(ctx context.Context) error) error {
	return fn(WithFrame(ctx, f))
}
