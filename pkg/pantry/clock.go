package pantry

import "time"

type (
	// Clock supplies the current instant. Services take it via constructor so
	// tests can pin time.
	Clock interface {
		Now() time.Time
	}

	systemClock struct{}
)

func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// ToLocal shifts a stored UTC instant by a whole-hour display offset. The
// offset is always passed in explicitly, either from the user's profile or
// from configuration.
func ToLocal(t time.Time, offsetHours int) time.Time {
	return t.Add(time.Duration(offsetHours) * time.Hour)
}
