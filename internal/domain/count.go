package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Count is an integer field that also decodes from numeric strings, since form
// inputs tend to store "120" rather than 120. Non-numeric strings decode as 0.
type Count int

// UnmarshalJSON implements json.Unmarshaler
func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = parseCount(s)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*c = truncCount(f)
	return nil
}

// truncCount drops the fraction of f and saturates at the int range
func truncCount(f float64) Count {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return Count(math.Trunc(f))
}

func parseCount(s string) Count {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return Count(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return truncCount(f)
	}
	return 0
}

// NonNegative clamps c to be at least zero
func (c Count) NonNegative() Count {
	if c < 0 {
		return 0
	}
	return c
}

// Clamp restricts c to [lo, hi]
func (c Count) Clamp(lo, hi Count) Count {
	if c < lo {
		return lo
	}
	if c > hi {
		return hi
	}
	return c
}
