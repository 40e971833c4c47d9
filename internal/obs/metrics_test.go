package obs

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(loginsTotal.WithLabelValues(OutcomeSuccess))
	Login(OutcomeSuccess)
	after := testutil.ToFloat64(loginsTotal.WithLabelValues(OutcomeSuccess))
	if after != before+1 {
		t.Fatalf("expected login counter to increment, before=%v after=%v", before, after)
	}

	Refresh(OutcomeExpiredTooLong)
	if v := testutil.ToFloat64(refreshesTotal.WithLabelValues(OutcomeExpiredTooLong)); v < 1 {
		t.Fatalf("expected refresh counter >= 1, got %v", v)
	}

	AuthzRejection(OutcomeInvalidToken)
	if v := testutil.ToFloat64(authzRejectionsTotal.WithLabelValues(OutcomeInvalidToken)); v < 1 {
		t.Fatalf("expected rejection counter >= 1, got %v", v)
	}
}
