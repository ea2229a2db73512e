package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"

	"github.com/cone-one/ragchat/internal/adapter/utils"
	"github.com/cone-one/ragchat/internal/api"
	"github.com/cone-one/ragchat/internal/config"
	"github.com/cone-one/ragchat/internal/metrics"
	"github.com/cone-one/ragchat/pkg/logger_i"
)

var logger = logger_i.NewLogger("middleware")

// Wrap injects a trace id into the request context, applies the per-IP rate
// limit and records request metrics around the wrapped handler.
func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK}

		r = injectTrace(r)

		if !allowRequest(r) {
			writeLimitExceeded(rec, r)
		} else {
			next(rec, r)
		}

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc()
	}
}

func injectTrace(r *http.Request) *http.Request {
	trace := r.Header.Get("X-Trace-Id")
	if trace == "" {
		trace = utils.GetNewUUID()
	}
	ctx := context.WithValue(r.Context(), config.TRACE_ID_KEY, trace)
	r.Header.Set("X-Trace-Id", trace)
	return r.WithContext(ctx)
}

func allowRequest(r *http.Request) bool {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return limiterInstance.limiterFor(ip).Allow()
}

func writeLimitExceeded(w http.ResponseWriter, r *http.Request) {
	logger.Warn("Too many requests", "ip", r.RemoteAddr, "path", r.URL.Path)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Detail: "rate limit exceeded"})
}
