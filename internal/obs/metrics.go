package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Auth flow metrics. Labels stay low-cardinality: outcome values are a
// small closed set, never user-supplied strings.
var (
	loginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Login attempts by outcome.",
		},
		[]string{"outcome"},
	)

	refreshesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_token_refreshes_total",
			Help: "Token refresh attempts by outcome.",
		},
		[]string{"outcome"},
	)

	authzRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_authorization_rejections_total",
			Help: "Protected requests rejected before reaching a handler.",
		},
		[]string{"reason"},
	)
)

// Outcome label values.
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeInactive           = "account_inactive"
	OutcomeInvalidToken       = "invalid_token"
	OutcomeExpired            = "expired"
	OutcomeExpiredTooLong     = "expired_too_long"
	OutcomeRateLimited        = "rate_limited"
	OutcomeMissingToken       = "missing_token"
	OutcomeAccountMissing     = "account_missing"
	OutcomeError              = "error"
)

// Init registers metrics in the default registry.
func Init() {
	prometheus.MustRegister(loginsTotal, refreshesTotal, authzRejectionsTotal)
}

func Login(outcome string)         { loginsTotal.WithLabelValues(outcome).Inc() }
func Refresh(outcome string)       { refreshesTotal.WithLabelValues(outcome).Inc() }
func AuthzRejection(reason string) { authzRejectionsTotal.WithLabelValues(reason).Inc() }

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
