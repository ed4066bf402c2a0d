package corrector

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NewMetrics_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.NotEmpty(t, families)
	assert.NotNil(t, m)
}

func TestMetrics_ObserveDictionary_NilReceiverIsNoOp(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.observeDictionary("dict", 3, time.Millisecond)
	})
}

func TestMetrics_ObserveDictionary_AccumulatesAcrossCalls(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.observeDictionary("dict", 2, time.Millisecond)
	m.observeDictionary("dict", 3, time.Millisecond)

	assert.Equal(t, float64(5), testutil.ToFloat64(m.applied.WithLabelValues("dict")))
}
