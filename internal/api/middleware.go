package api

import (
	"net/http"
	"time"

	"git.sr.ht/~spc/go-log"
	"github.com/go-chi/chi/v5/middleware"
)

func NewLoggerMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.Debugf("request completed: id=%s method=%s uri=%s status=%d size=%d duration=%s",
					middleware.GetReqID(r.Context()), r.Method, r.RequestURI,
					ww.Status(), ww.BytesWritten(), time.Since(start))
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
