package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDefaultIsIdempotent(t *testing.T) {
	RegisterDefault()
	RegisterDefault()

	Solves.WithLabelValues(OutcomeNoSolution).Inc()

	families, err := Registry.Gather()
	require.NoError(t, err)

	var solves float64
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
		if f.GetName() != "vrp_solves_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "outcome" && l.GetValue() == OutcomeNoSolution {
					solves = m.GetCounter().GetValue()
				}
			}
		}
	}

	assert.True(t, names["go_goroutines"])
	assert.GreaterOrEqual(t, solves, 1.0)
}
