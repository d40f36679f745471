package bridge

import (
	"context"
	"fmt"
	"strconv"
)

// Event is a browser-level notification decoded from an inbound frame.
type Event struct {
	Name string
	Data map[string]any
}

// HandlerFunc processes one event for a session.
type HandlerFunc func(ctx context.Context, s *Session, e Event) error

// Middleware wraps event dispatch.
type Middleware func(next HandlerFunc) HandlerFunc

// String returns the value under key rendered as a string, or "".
func (e Event) String(key string) string {
	if v, ok := e.Data[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// Int returns the value under key as an int, or 0. JSON numbers arrive
// as float64 and are truncated.
func (e Event) Int(key string) int {
	if v, ok := e.Data[key]; ok {
		switch val := v.(type) {
		case int:
			return val
		case float64:
			return int(val)
		case string:
			i, _ := strconv.Atoi(val)
			return i
		}
	}
	return 0
}

// Float returns the value under key as a float64, or 0.
func (e Event) Float(key string) float64 {
	if v, ok := e.Data[key]; ok {
		switch val := v.(type) {
		case float64:
			return val
		case int:
			return float64(val)
		case string:
			f, _ := strconv.ParseFloat(val, 64)
			return f
		}
	}
	return 0
}

// Bool returns the value under key as a bool, or false.
func (e Event) Bool(key string) bool {
	if v, ok := e.Data[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
		b, _ := strconv.ParseBool(fmt.Sprintf("%v", v))
		return b
	}
	return false
}

// Has reports whether key is present in the event data.
func (e Event) Has(key string) bool {
	_, ok := e.Data[key]
	return ok
}
