package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Tokyo")
	if err != nil {
		panic(err)
	}
}

// force the timezone to be JST so the "daily" word rotation flips at
// midnight in Japan regardless of where the server happens to run
func Now() time.Time {
	return time.Now().In(Location)
}

// DateString is the canonical calendar-date form used to seed the daily
// selection, e.g. "2024-01-01".
func DateString(t time.Time) string {
	return t.In(Location).Format(time.DateOnly)
}

// Today returns DateString for the current JST day.
func Today() string {
	return DateString(Now())
}
