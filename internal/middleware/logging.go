package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// requestLog is a mutable per-request record installed by Logger and
// filled in by middleware further down the chain. Auth runs on a derived
// context that Logger never sees, so the user ID has to travel back up
// through a pointer rather than a context value.
type requestLog struct {
	userID int64
	authed bool
}

type requestLogKey struct{}

func setLogUser(ctx context.Context, userID int64) {
	if entry, ok := ctx.Value(requestLogKey{}).(*requestLog); ok {
		entry.userID = userID
		entry.authed = true
	}
}

// Logger logs every request with method, path, status, duration and, when
// authenticated, the user ID. 4xx log at warn, 5xx at error.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		entry := &requestLog{}
		r = r.WithContext(context.WithValue(r.Context(), requestLogKey{}, entry))
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration_ms", float64(time.Since(start).Nanoseconds()) / 1e6,
		}
		if entry.authed {
			args = append(args, "user_id", entry.userID)
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		slog.Log(r.Context(), level, "http request", args...)
	})
}
