package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseI64 parses an integer field, tolerating a float-formatted whole
// number ("42.0") the way spreadsheet exports often write them.
func ParseI64(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	if f != float64(int64(f)) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int64(f), nil
}

// ParseF64 parses a floating point field.
func ParseF64(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

// ParseSmoker normalizes a smoker field to a boolean. Accepted
// spellings: yes/no, true/false, y/n, 1/0 (case-insensitive).
func ParseSmoker(s string) (bool, error) {
	switch Category(s) {
	case "yes", "true", "y", "1":
		return true, nil
	case "no", "false", "n", "0":
		return false, nil
	}
	return false, fmt.Errorf("not a smoker flag: %q", s)
}

// CanonicalSmoker renders a smoker boolean back to the canonical
// "yes"/"no" form used in the prepared file.
func CanonicalSmoker(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
