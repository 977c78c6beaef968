package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriodDays(t *testing.T) {
	tests := []struct {
		name   string
		period string
		want   int
	}{
		{name: "range takes upper bound", period: "0 a 14 dias", want: 14},
		{name: "range with extra spaces", period: "  15 a 30 dias ", want: 30},
		{name: "after keyword", period: "após 240 dias", want: 240},
		{name: "after keyword without accent", period: "apos 180 dias", want: 180},
		{name: "english after", period: "after 90 days", want: 90},
		{name: "english range", period: "31 to 60 days", want: 60},
		{name: "uppercase", period: "APÓS 240 DIAS", want: 240},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePeriodDays(tt.period)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePeriodDays_Malformed(t *testing.T) {
	for _, period := range []string{"", "duas semanas", "após dias", "10 a x dias", "14"} {
		t.Run(period, func(t *testing.T) {
			_, err := ParsePeriodDays(period)
			var malformed *MalformedPeriodError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, period, malformed.Period)
		})
	}
}
