package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pergazuz/thai-map/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		distM     float64
		primaryM  float64
		extendedM float64
		expected  model.CoverageStatus
	}{
		{
			name:      "covered: well inside primary",
			distM:     49999,
			primaryM:  50000,
			extendedM: 100000,
			expected:  model.StatusCovered,
		},
		{
			name:      "covered: exactly at primary boundary",
			distM:     50000,
			primaryM:  50000,
			extendedM: 100000,
			expected:  model.StatusCovered,
		},
		{
			name:      "near: just past primary",
			distM:     50001,
			primaryM:  50000,
			extendedM: 100000,
			expected:  model.StatusNear,
		},
		{
			name:      "near: exactly at extended boundary",
			distM:     100000,
			primaryM:  50000,
			extendedM: 100000,
			expected:  model.StatusNear,
		},
		{
			name:      "none: just past extended",
			distM:     100001,
			primaryM:  50000,
			extendedM: 100000,
			expected:  model.StatusNone,
		},
		{
			name:      "covered: zero distance",
			distM:     0,
			primaryM:  50000,
			extendedM: 100000,
			expected:  model.StatusCovered,
		},
		{
			name:      "custom radii respected",
			distM:     15000,
			primaryM:  10000,
			extendedM: 20000,
			expected:  model.StatusNear,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.distM, tt.primaryM, tt.extendedM)
			assert.Equal(t, tt.expected, result)
		})
	}
}
