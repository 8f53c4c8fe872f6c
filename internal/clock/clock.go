package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts time.Now so schedule-driven logic can be tested deterministically.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

var Module = fx.Provide(func() Clock {
	return SystemClock{}
})
