package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// UnknownLabel is rendered in place of a percentage that has not been reported
const UnknownLabel = "Unknown"

// Percent is a percentage in [0,100] or the Unknown sentinel.
// The zero value is Unknown.
type Percent struct {
	value int
	known bool
}

// UnknownPercent is the explicit unknown sentinel
var UnknownPercent = Percent{}

// NewPercent returns a known percentage clamped to [0,100]
func NewPercent(v int) Percent {
	return Percent{value: clampPct(v), known: true}
}

// Value returns the percentage and whether it is known
func (p Percent) Value() (int, bool) {
	return p.value, p.known
}

// Known reports whether the percentage has been reported
func (p Percent) Known() bool {
	return p.known
}

// Or returns the percentage, or fallback when unknown
func (p Percent) Or(fallback int) int {
	if !p.known {
		return fallback
	}
	return p.value
}

// String renders "42 %" or "Unknown"
func (p Percent) String() string {
	if !p.known {
		return UnknownLabel
	}
	return fmt.Sprintf("%d %%", p.value)
}

// MarshalJSON writes a number when known and "Unknown" otherwise
func (p Percent) MarshalJSON() ([]byte, error) {
	if !p.known {
		return json.Marshal(UnknownLabel)
	}
	return json.Marshal(p.value)
}

// UnmarshalJSON accepts a number, a numeric string, or any other string/null as Unknown.
// The controller reports "Unknown" before its sensors settle.
func (p *Percent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = UnknownPercent
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			*p = UnknownPercent
			return nil
		}
		*p = NewPercent(int(math.Round(f)))
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("invalid percentage %s: %w", string(data), err)
	}
	*p = NewPercent(int(math.Round(f)))
	return nil
}

func clampPct(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
