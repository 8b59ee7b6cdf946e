package types

import (
	"math"
	"strconv"
	"strings"
)

// Position is a zero-or-greater line/column pair inside the code buffer.
type Position struct {
	Line   int
	Column int
}

// Selection is a possibly open-ended range in the code buffer.
type Selection struct {
	Start *Position
	End   *Position
}

// MakePosition coerces loosely typed input (as it arrives from the address
// bar or an editor widget) into a Position. Non-numeric and negative input
// becomes 0.
func MakePosition(line, column any) Position {
	return Position{Line: coerceInt(line), Column: coerceInt(column)}
}

func coerceInt(v any) int {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return clamp(int64(n))
	case int8:
		return clamp(int64(n))
	case int16:
		return clamp(int64(n))
	case int32:
		return clamp(int64(n))
	case int64:
		return clamp(n)
	case uint:
		return clampFloat(float64(n))
	case uint8:
		return int(n)
	case uint16:
		return int(n)
	case uint32:
		return clampFloat(float64(n))
	case uint64:
		return clampFloat(float64(n))
	case float32:
		return clampFloat(float64(n))
	case float64:
		return clampFloat(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		return parseNumeric(n)
	case []byte:
		return parseNumeric(string(n))
	}
	return 0
}

func parseNumeric(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") {
		u, err := strconv.ParseUint(lower[2:], 16, 63)
		if err != nil {
			return 0
		}
		return clampFloat(float64(u))
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return clamp(i)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return clampFloat(f)
}

func clamp(n int64) int {
	if n < 0 {
		return 0
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

func clampFloat(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}
