package cmd

// Middleware wraps a handler (e.g. logging, recovery, history).
type Middleware func(HandlerFunc) HandlerFunc

// Apply applies middlewares to h; the first in the list is the outermost.
func Apply(h HandlerFunc, mws ...Middleware) HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
