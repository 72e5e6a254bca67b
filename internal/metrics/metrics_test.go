package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSearch_Observe(t *testing.T) {
	m := NewSearch(prometheus.NewRegistry())

	m.Observe(ResultOK, 20*time.Millisecond, 4, 2)
	m.Observe(ResultOK, 10*time.Millisecond, 1, 0)
	m.Observe(ResultError, time.Millisecond, 0, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.total.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.total.WithLabelValues(ResultError)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.missingLegs))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestSearch_NilIsNoop(t *testing.T) {
	var m *Search
	assert.NotPanics(t, func() { m.Observe(ResultOK, time.Second, 1, 1) })
}
