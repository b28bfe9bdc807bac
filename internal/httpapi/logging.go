package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// zlog is an optional structured logger. If unset, the global zerolog logger is used.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) {
	l = l.With().Str("component", "httpapi").Logger()
	zlog = &l
}

func logger() *zerolog.Logger {
	if zlog != nil {
		return zlog
	}
	return &log.Logger
}

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch s {
	case "off", "":
		return LevelOff
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

var defaultLogLevel = LevelInfo

// SetDefaultLogLevel sets the request log level used when a request carries
// no override.
func SetDefaultLogLevel(s string) { defaultLogLevel = parseLevel(s) }

func requestLogLevel(r *http.Request) LogLevel {
	// Per-request overrides
	if v := r.URL.Query().Get("log"); v != "" {
		if v == "1" {
			return LevelDebug
		}
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

// requestLog logs the start and end of one predict request at the level the
// request asks for.
type requestLog struct {
	lvl   LogLevel
	rid   string
	path  string
	start time.Time
}

func startRequestLog(r *http.Request, items int) requestLog {
	rl := requestLog{lvl: requestLogLevel(r), rid: middleware.GetReqID(r.Context()), path: r.URL.Path, start: time.Now()}
	if rl.lvl >= LevelInfo {
		z := logger().Info().Str("path", rl.path).Int("items", items)
		if rl.rid != "" {
			z = z.Str("request_id", rl.rid)
		}
		z.Msg("predict start")
	}
	return rl
}

func (rl requestLog) end(status int, err error) {
	var z *zerolog.Event
	switch {
	case err != nil && status >= 500 && rl.lvl >= LevelError:
		z = logger().Error()
	case rl.lvl >= LevelInfo:
		z = logger().Info()
	default:
		return
	}
	z = z.Str("path", rl.path).Int("status", status).Dur("dur", time.Since(rl.start))
	if rl.rid != "" {
		z = z.Str("request_id", rl.rid)
	}
	if err != nil {
		z = z.Err(err)
	}
	z.Msg("predict end")
}

// debugResult logs a prediction outcome when the request asked for debug logs.
func (rl requestLog) debugResult(prediction string, confidence float64, model string) {
	if rl.lvl < LevelDebug {
		return
	}
	logger().Debug().Str("request_id", rl.rid).Str("prediction", prediction).
		Float64("confidence", confidence).Str("model", model).Msg("predict result")
}
