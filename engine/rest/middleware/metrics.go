package middleware

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name:      "requests_total",
	Namespace: "inheritance_guard",
	Subsystem: "rest",
	Help:      "number of REST requests, labelled by route and status code",
}, []string{"route", "code"})

// MetricsMiddleware creates a middleware which counts each request against its
// matched route.
func MetricsMiddleware() mux.MiddlewareFunc {
	return func(inner http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			respWriter := newResponseWriter(w)
			inner.ServeHTTP(respWriter, req)

			route := req.URL.Path
			if current := mux.CurrentRoute(req); current != nil {
				if name := current.GetName(); name != "" {
					route = name
				}
			}
			httpRequests.WithLabelValues(route, strconv.Itoa(respWriter.statusCode)).Inc()
		})
	}
}
