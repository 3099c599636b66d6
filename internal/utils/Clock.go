package utils

import "time"

// Clock yields "now" in the location calendar dates are interpreted in.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type SystemClock struct {
	Loc *time.Location
}

func (s SystemClock) Now() time.Time {
	return time.Now().In(s.Location())
}

func (s SystemClock) Location() *time.Location {
	if s.Loc == nil {
		return time.Local
	}
	return s.Loc
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) Location() *time.Location {
	return m.FixedNow.Location()
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}
