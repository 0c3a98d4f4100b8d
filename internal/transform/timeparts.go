package transform

import (
	"time"

	"sparkify-etl/internal/model"
)

// TimeParts breaks an epoch-millisecond timestamp into its UTC calendar
// fields. Week is the ISO 8601 week number.
func TimeParts(ts int64) model.TimeRow {
	start := time.UnixMilli(ts).UTC()
	_, week := start.ISOWeek()
	return model.TimeRow{
		StartTime: start,
		Hour:      start.Hour(),
		Day:       start.Day(),
		Week:      week,
		Month:     int(start.Month()),
		Year:      start.Year(),
		Weekday:   start.Weekday().String(),
	}
}
