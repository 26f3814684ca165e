package middleware

import "net/http"

// Chain wraps h so that the first middleware is the outermost. Unlike mux.Router.Use,
// the middlewares also run for requests that match no route.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
