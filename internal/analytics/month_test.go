package analytics

import (
	"testing"
	"time"
)

func TestTruncateMonth(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"mid month",
			time.Date(2024, 3, 15, 13, 45, 0, 0, time.UTC),
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"already truncated",
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"zoned timestamp crosses month boundary in UTC",
			time.Date(2024, 2, 29, 22, 0, 0, 0, loc), // 2024-03-01 03:00 UTC
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateMonth(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("TruncateMonth(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("TruncateMonth(%v) location = %v, want UTC", tt.in, got.Location())
			}
		})
	}
}

func TestMonthKey(t *testing.T) {
	m := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := MonthKey(m); got != "2024-03" {
		t.Errorf("MonthKey = %q, want %q", got, "2024-03")
	}
}
