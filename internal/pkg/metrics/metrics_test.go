package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordDownstreamCall(t *testing.T) {
	before := testutil.ToFloat64(downstreamCallsTotal.WithLabelValues("test-ledger", OutcomeFailed))

	RecordDownstreamCall("test-ledger", errors.New("boom"), 10*time.Millisecond)
	RecordDownstreamCall("test-ledger", nil, time.Millisecond)

	assert.InDelta(t, before+1, testutil.ToFloat64(downstreamCallsTotal.WithLabelValues("test-ledger", OutcomeFailed)), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(downstreamCallsTotal.WithLabelValues("test-ledger", OutcomeOK)), 0.001)
}

func TestRecordPropagationHop(t *testing.T) {
	RecordPropagationHop("control_order", "completed")
	RecordPropagationHop("control_order", "completed")

	assert.InDelta(t, 2, testutil.ToFloat64(propagationHopsTotal.WithLabelValues("control_order", "completed")), 0.001)
}
