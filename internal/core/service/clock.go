package service

import "time"

// Clock supplies "now" to the services. Injected rather than read directly
// so date-window logic and created_at stamping are testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns the wall-clock implementation used in production.
func SystemClock() Clock { return systemClock{} }
