package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// emptyTokens are cell texts that mean "no value". Compared lowercased.
var emptyTokens = map[string]struct{}{
	"-":    {},
	"—":    {},
	"–":    {},
	"n/a":  {},
	"na":   {},
	"null": {},
	"none": {},
}

// IsEmptyToken reports whether s, already cleaned, stands for an empty cell.
// Every classifier goes through this predicate.
func IsEmptyToken(s string) bool {
	if s == "" {
		return true
	}
	_, ok := emptyTokens[strings.ToLower(s)]
	return ok
}

// NormalizeCell canonicalizes a raw cell value.
// It returns false when the cell holds no meaningful value.
func NormalizeCell(v interface{}) (string, bool) {
	if v == nil {
		return "", false
	}
	s := collapseSpace(cellText(v))
	if IsEmptyToken(s) {
		return "", false
	}
	return s, true
}

func cellText(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	case int:
		return strconv.FormatInt(int64(x), 10)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case bool:
		if x {
			return "True"
		}
		return "False"
	case time.Time:
		return formatDateTime(x)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// formatFloat renders integral values without a decimal point and the rest
// in shortest round-trip form, using exponent notation outside [1e-4, 1e16).
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == math.Trunc(f):
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	exp := math.Floor(math.Log10(math.Abs(f)))
	if exp < -4 || exp >= 16 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// collapseSpace turns line breaks and whitespace runs into single spaces and trims.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
