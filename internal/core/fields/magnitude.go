package fields

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// magnitudePattern matches "83K+", "1.5M+", "10,000+", "500".
var magnitudePattern = regexp.MustCompile(`^([0-9][0-9,]*)(?:\.([0-9]+))?\s*([kKmM])?\s*\+?$`)

var suffixMultipliers = map[string]int64{
	"":  1,
	"k": 1_000,
	"m": 1_000_000,
}

// ParseMagnitude parses a human-readable count into its lower bound.
//
// "83K+" is 83000, "1.5M+" is 1500000 and "500+" is 500. A trailing "+"
// marks a floor estimate and is never rounded up. Bare numbers are
// truncated towards zero. Anything else, including "N/A", negative
// numbers and nil, yields nil rather than zero.
func ParseMagnitude(v any) *int64 {
	switch n := v.(type) {
	case nil:
		return nil
	case int:
		return nonNegative(int64(n))
	case int32:
		return nonNegative(int64(n))
	case int64:
		return nonNegative(n)
	case uint:
		return clampUint(uint64(n))
	case uint64:
		return clampUint(n)
	case float32:
		return fromFloat(float64(n))
	case float64:
		return fromFloat(n)
	case string:
		return parseMagnitudeString(n)
	default:
		return nil
	}
}

func parseMagnitudeString(s string) *int64 {
	s = strings.TrimSpace(s)
	m := magnitudePattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}

	whole, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
	if err != nil {
		return nil
	}
	mult := suffixMultipliers[strings.ToLower(m[3])]

	if whole > math.MaxInt64/mult {
		return nil
	}
	value := whole * mult

	// Fractional digits are applied in integer arithmetic so that
	// "2.3M" is exactly 2300000, then truncated to the floor.
	if frac := m[2]; frac != "" && mult > 1 {
		digits := frac
		if len(digits) > 9 {
			digits = digits[:9]
		}
		f, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return nil
		}
		scale := int64(math.Pow10(len(digits)))
		part := f * mult / scale
		if value > math.MaxInt64-part {
			return nil
		}
		value += part
	}

	return &value
}

func nonNegative(n int64) *int64 {
	if n < 0 {
		return nil
	}
	return &n
}

func clampUint(n uint64) *int64 {
	if n > math.MaxInt64 {
		return nil
	}
	v := int64(n)
	return &v
}

func fromFloat(f float64) *int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f >= math.MaxInt64 {
		return nil
	}
	v := int64(math.Floor(f))
	return &v
}
