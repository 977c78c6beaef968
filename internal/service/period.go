package service

import (
	"strconv"
	"strings"
)

var (
	afterKeywords   = []string{"após", "apos", "after"}
	rangeSeparators = []string{" a ", " to "}
)

// ParsePeriodDays extracts the day count of a catalog period descriptor.
// "após N dias" yields N and "X a Y dias" yields the upper bound Y.
func ParsePeriodDays(period string) (int, error) {
	normalized := strings.ToLower(strings.TrimSpace(period))
	fields := strings.Fields(normalized)

	for i, field := range fields {
		for _, keyword := range afterKeywords {
			if field != keyword {
				continue
			}
			if i+1 < len(fields) {
				if days, ok := parseDayCount(fields[i+1]); ok {
					return days, nil
				}
			}
			return 0, &MalformedPeriodError{Period: period}
		}
	}

	for _, sep := range rangeSeparators {
		idx := strings.LastIndex(normalized, sep)
		if idx < 0 {
			continue
		}
		upper := strings.Fields(normalized[idx+len(sep):])
		if len(upper) > 0 {
			if days, ok := parseDayCount(upper[0]); ok {
				return days, nil
			}
		}
		return 0, &MalformedPeriodError{Period: period}
	}

	return 0, &MalformedPeriodError{Period: period}
}

func parseDayCount(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
