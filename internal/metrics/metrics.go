package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the service's Prometheus collectors. It implements
// domain.RosterObserver.
type Recorder struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	signups         *prometheus.CounterVec
	unregistrations *prometheus.CounterVec
	participants    *prometheus.GaugeVec
}

// New registers the collectors on reg and returns a Recorder.
// Passing a fresh prometheus.NewRegistry() keeps tests isolated.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		requestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests handled",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		signups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "activity_signups_total",
				Help: "Total number of successful activity signups",
			},
			[]string{"activity"},
		),
		unregistrations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "activity_unregistrations_total",
				Help: "Total number of successful activity unregistrations",
			},
			[]string{"activity"},
		),
		participants: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "activity_participants",
				Help: "Current number of participants per activity",
			},
			[]string{"activity"},
		),
	}
}

// ObserveRequest records one handled HTTP request.
func (r *Recorder) ObserveRequest(method, route string, status int, d time.Duration) {
	r.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// SetParticipants sets the participant gauge, used to prime it from the seed.
func (r *Recorder) SetParticipants(activity string, participants int) {
	r.participants.WithLabelValues(activity).Set(float64(participants))
}

func (r *Recorder) ParticipantAdded(activity string, participants int) {
	r.signups.WithLabelValues(activity).Inc()
	r.SetParticipants(activity, participants)
}

func (r *Recorder) ParticipantRemoved(activity string, participants int) {
	r.unregistrations.WithLabelValues(activity).Inc()
	r.SetParticipants(activity, participants)
}
