package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name   string
		ra, rb int
		k      int
		sa     Points
		want   int
	}{
		{name: "same rating draw", ra: 1000, rb: 1000, k: 40, sa: Draw, want: 1000},
		{name: "same rating win", ra: 1000, rb: 1000, k: 40, sa: Win, want: 1020},
		{name: "same rating lose", ra: 1000, rb: 1000, k: 40, sa: Lose, want: 980},
		{name: "top rating win", ra: 1100, rb: 1000, k: 40, sa: Win, want: 1114},
		{name: "top rating lose", ra: 1100, rb: 1000, k: 40, sa: Lose, want: 1074},
		{name: "bottom rating win", ra: 1000, rb: 1100, k: 40, sa: Win, want: 1026},
		{name: "bottom rating lose", ra: 1000, rb: 1100, k: 40, sa: Lose, want: 986},
		{name: "established player", ra: 1000, rb: 1000, k: 20, sa: Win, want: 1010},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Calculate(tt.ra, tt.rb, tt.k, tt.sa))
		})
	}
}

func TestCoefficient(t *testing.T) {
	assert.Equal(t, 40, coefficient(0, 1000))
	assert.Equal(t, 40, coefficient(30, 2500))
	assert.Equal(t, 20, coefficient(31, 2399))
	assert.Equal(t, 10, coefficient(31, 2400))
}

func TestTeamMean(t *testing.T) {
	ratings := map[string]int{"a": 1000, "b": 1100, "c": 1050}
	assert.Equal(t, 1050, teamMean(ratings, []string{"a", "b", "c"}))
	assert.Equal(t, eloStart, teamMean(ratings, nil))
}
