package httpapi

import (
	"context"
	"net/http"
)

// serverBaseCtx is a process-level context that can be canceled on shutdown.
// Defaults to Background if not set.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level base context used by handlers.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// joinContexts returns a context carrying a's values that is canceled when
// either a or b is done. The returned cancel func must be called when the
// handler ends.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(a)
	stop := context.AfterFunc(b, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// requestContext joins the request with the server base context and applies
// the predict timeout.
func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	ctx, cancelJoin := joinContexts(r.Context(), serverBaseCtx)
	if predictTimeout <= 0 {
		return ctx, cancelJoin
	}
	ctx, cancelTimeout := context.WithTimeout(ctx, predictTimeout)
	return ctx, func() {
		cancelTimeout()
		cancelJoin()
	}
}

// aborted reports whether the client went away or the server is shutting down.
func aborted(r *http.Request) bool {
	return r.Context().Err() != nil || serverBaseCtx.Err() != nil
}
