package monitoring

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	LoginSuccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "login_success_total",
		Help: "Total successful login attempts",
	})

	LoginFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "login_failure_total",
		Help: "Total failed login attempts",
	}, []string{"reason"})

	SignupSuccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "signup_success_total",
		Help: "Total successful signups",
	})

	MessagesPosted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "messages_posted_total",
		Help: "Total messages successfully posted",
	})

	MessagesDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "messages_deleted_total",
		Help: "Total messages deleted by their owners",
	})

	FollowsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "follows_created_total",
		Help: "Total follow edges created",
	})

	UnauthorizedAccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "unauthorized_access_total",
		Help: "Total requests refused by the session guard",
	})
)

func init() {
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(LoginSuccess)
	prometheus.MustRegister(LoginFailure)
	prometheus.MustRegister(SignupSuccess)
	prometheus.MustRegister(MessagesPosted)
	prometheus.MustRegister(MessagesDeleted)
	prometheus.MustRegister(FollowsCreated)
	prometheus.MustRegister(UnauthorizedAccess)
}

// Middleware to track request timing and status code
type statusRecordingWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecordingWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &statusRecordingWriter{ResponseWriter: w, statusCode: 200}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		route := r.URL.Path
		method := r.Method
		status := fmt.Sprintf("%d", rw.statusCode)

		RequestDuration.WithLabelValues(method, route, status).Observe(duration)
	})
}
