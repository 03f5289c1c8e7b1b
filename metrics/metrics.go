package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LeaveSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "orbiiit", Name: "leave_requests_submitted_total", Help: "Leave requests created",
	})
	LeaveDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orbiiit", Name: "leave_decisions_total", Help: "Faculty/warden decisions applied",
	}, []string{"role", "decision"})
	AttendanceScans = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orbiiit", Name: "mess_scans_total", Help: "QR scan attempts by result",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(LeaveSubmitted, LeaveDecisions, AttendanceScans)
}

func Handler() http.Handler { return promhttp.Handler() }
