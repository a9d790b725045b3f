package instrument

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		name               string
		symbol             string
		expectedMultiplier float64
		expectedTickSize   float64
		expectedCommission float64
	}{
		{
			name:               "Exact match",
			symbol:             "ES",
			expectedMultiplier: 50,
			expectedTickSize:   0.25,
			expectedCommission: StandardCommission,
		},
		{
			name:               "Leading slash stripped",
			symbol:             "/ES",
			expectedMultiplier: 50,
			expectedTickSize:   0.25,
			expectedCommission: StandardCommission,
		},
		{
			name:               "Lowercase normalized",
			symbol:             "nq",
			expectedMultiplier: 20,
			expectedTickSize:   0.25,
			expectedCommission: StandardCommission,
		},
		{
			name:               "Prefix match with expiry suffix",
			symbol:             "ESZ5",
			expectedMultiplier: 50,
			expectedTickSize:   0.25,
			expectedCommission: StandardCommission,
		},
		{
			name:               "Micro root gets discounted rate",
			symbol:             "MNQ",
			expectedMultiplier: 2,
			expectedTickSize:   0.25,
			expectedCommission: MicroCommission,
		},
		{
			name:               "Micro prefix not swallowed by full-size root",
			symbol:             "/MESM5",
			expectedMultiplier: 5,
			expectedTickSize:   0.25,
			expectedCommission: MicroCommission,
		},
		{
			name:               "Micro silver before silver",
			symbol:             "SILZ5",
			expectedMultiplier: 1000,
			expectedTickSize:   0.005,
			expectedCommission: MicroCommission,
		},
		{
			name:               "Energy family",
			symbol:             "CLF6",
			expectedMultiplier: 1000,
			expectedTickSize:   0.01,
			expectedCommission: StandardCommission,
		},
		{
			name:               "Unknown symbol falls back to defaults",
			symbol:             "AAPL",
			expectedMultiplier: 1,
			expectedTickSize:   0.01,
			expectedCommission: StandardCommission,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			meta := Resolve(tc.symbol)
			assert.Equal(t, tc.expectedMultiplier, meta.Multiplier)
			assert.Equal(t, tc.expectedTickSize, meta.TickSize)
			assert.Equal(t, tc.expectedCommission, meta.CommissionRate)
		})
	}
}

func TestRoot(t *testing.T) {
	testCases := []struct {
		symbol   string
		expected string
	}{
		{"/ES", "ES"},
		{"/ESZ5", "ES"},
		{"mnqh6", "MNQ"},
		{"GC", "GC"},
		{"MGCM5", "MGC"},
		{"AAPL", "AAPL"},
	}

	for _, tc := range testCases {
		t.Run(tc.symbol, func(t *testing.T) {
			assert.Equal(t, tc.expected, Root(tc.symbol))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ES", Normalize(" /es "))
	assert.Equal(t, "MNQ", Normalize("mnq"))
}
