package util

import (
	"fmt"
	"sync"
	"time"
)

var (
	mu              sync.RWMutex
	displayLocation = time.Local
)

// SetLocation sets the zone user-facing timestamps are shown in. An empty
// name or "Local" keeps the process zone.
func SetLocation(name string) error {
	loc := time.Local
	if name != "" && name != "Local" {
		var err error
		loc, err = time.LoadLocation(name)
		if err != nil {
			return fmt.Errorf("load location %q: %w", name, err)
		}
	}
	mu.Lock()
	displayLocation = loc
	mu.Unlock()
	return nil
}

func Location() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	return displayLocation
}

// Format renders t in the display location.
func Format(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.In(Location()).Format(layout)
}
