package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateString(t *testing.T) {
	cases := []struct {
		in     time.Time
		expect string
	}{
		{
			// 23:30 UTC is already the next day in JST
			in:     time.Date(2024, time.January, 1, 23, 30, 0, 0, time.UTC),
			expect: "2024-01-02",
		},
		{
			in:     time.Date(2024, time.January, 1, 3, 0, 0, 0, time.UTC),
			expect: "2024-01-01",
		},
		{
			in:     time.Date(2024, time.June, 15, 12, 0, 0, 0, Location),
			expect: "2024-06-15",
		},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, DateString(test.in))
	}
}
