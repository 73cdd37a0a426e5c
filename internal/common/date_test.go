package common_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/pocket/internal/common"
)

func TestDateOnly(t *testing.T) {
	lisbon := time.FixedZone("WEST", 3600)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "midnight is kept",
			in:   time.Date(2023, 9, 11, 0, 0, 0, 0, time.UTC),
			want: time.Date(2023, 9, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "time of day is dropped",
			in:   time.Date(2023, 9, 11, 23, 59, 59, 999, time.UTC),
			want: time.Date(2023, 9, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "calendar day of the original zone",
			in:   time.Date(2023, 9, 11, 0, 30, 0, 0, lisbon),
			want: time.Date(2023, 9, 11, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, common.DateOnly(tt.in))
		})
	}
}
