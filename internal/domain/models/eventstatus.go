// internal/domain/models/eventstatus.go
package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// EventStatus is whether an event accepts registrations.
//
// Stored documents use two encodings: integer 1/0 and the strings "open"/"close".
// Neither is authoritative, so the status keeps track of the encoding it was read
// from and writes itself back the same way.
type EventStatus struct {
	Open     bool
	encoding statusEncoding
}

type statusEncoding int

const (
	encodingInt statusEncoding = iota
	encodingString
	encodingBool
)

var (
	StatusOpen   = EventStatus{Open: true}
	StatusClosed = EventStatus{Open: false}
)

// ParseEventStatus decodes a raw status value. Missing or unrecognised values
// decode as open, matching the default new events are created with.
func ParseEventStatus(v any) EventStatus {
	switch s := v.(type) {
	case nil:
		return StatusOpen
	case bool:
		return EventStatus{Open: s, encoding: encodingBool}
	case int:
		return EventStatus{Open: s != 0}
	case int32:
		return EventStatus{Open: s != 0}
	case int64:
		return EventStatus{Open: s != 0}
	case float64:
		return EventStatus{Open: s != 0}
	case string:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "open", "opened":
			return EventStatus{Open: true, encoding: encodingString}
		case "close", "closed":
			return EventStatus{Open: false, encoding: encodingString}
		}
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return EventStatus{Open: n != 0}
		}
	}
	return StatusOpen
}

// Toggled flips the status, keeping its encoding.
func (s EventStatus) Toggled() EventStatus {
	return EventStatus{Open: !s.Open, encoding: s.encoding}
}

// Value is the stored representation in the status's own encoding.
func (s EventStatus) Value() any {
	switch s.encoding {
	case encodingString:
		if s.Open {
			return "open"
		}
		return "close"
	case encodingBool:
		return s.Open
	default:
		if s.Open {
			return 1
		}
		return 0
	}
}

// Label is the human-readable status.
func (s EventStatus) Label() string {
	if s.Open {
		return "Open"
	}
	return "Closed"
}

// MarshalJSON emits the integer encoding the public site's scripts expect.
func (s EventStatus) MarshalJSON() ([]byte, error) {
	if s.Open {
		return json.Marshal(1)
	}
	return json.Marshal(0)
}
