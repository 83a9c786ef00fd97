// Package lists holds the thin orchestration between the HTTP routes and the
// access layer: identifiers, timestamps and defaults are decided here.
package lists

import (
	"time"

	"github.com/google/uuid"
)

// TimestampFormat renders creation times as ISO-8601 with millisecond precision.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

type Clock func() time.Time

type IdGenerator func() string

func DefaultClock() time.Time {
	return time.Now()
}

func DefaultIdGenerator() string {
	return uuid.NewString()
}

func timestamp(clock Clock) string {
	return clock().UTC().Format(TimestampFormat)
}

func valueOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}
