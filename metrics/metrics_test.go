package metrics

import (
	"context"
	"testing"

	"flexispace/models"
	"flexispace/services/transaction"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestConfirmationObserver(t *testing.T) {
	confirmed := testutil.ToFloat64(BookingConfirmations.WithLabelValues("confirmed"))
	declined := testutil.ToFloat64(BookingConfirmations.WithLabelValues("declined"))

	var obs transaction.Observer = ConfirmationObserver{}
	obs.BookingConfirmed(context.Background(), models.BookingRecord{Amount: models.FromMajor(4800)})
	obs.ConfirmationFailed(context.Background(), transaction.Declined("card refused"))

	assert.Equal(t, confirmed+1, testutil.ToFloat64(BookingConfirmations.WithLabelValues("confirmed")))
	assert.Equal(t, declined+1, testutil.ToFloat64(BookingConfirmations.WithLabelValues("declined")))
}

func TestObserveTransition(t *testing.T) {
	before := testutil.ToFloat64(WizardTransitions.WithLabelValues("listing", "next", "blocked"))
	ObserveTransition("listing", "next", false)
	assert.Equal(t, before+1, testutil.ToFloat64(WizardTransitions.WithLabelValues("listing", "next", "blocked")))
}
