package common

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	MinYear = 1
	MaxYear = 4
)

func MapKeys[K comparable, V any](m map[K]V) []K {
	var result []K
	for k := range m {
		result = append(result, k)
	}
	return result
}

// NormalizeYearParam converts a year-of-study query value to [MinYear,
// MaxYear]. Non numeric values fall back to MinYear.
func NormalizeYearParam(s string) int {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return MinYear
	}

	if year < MinYear {
		return MinYear
	}

	if year > MaxYear {
		return MaxYear
	}

	return year
}

// Union returns a with every element of b not already in a appended. The
// second result reports whether anything was added.
func Union[T comparable](a []T, b ...T) ([]T, bool) {
	result := slices.Clone(a)
	changed := false
	for _, v := range b {
		if !slices.Contains(result, v) {
			result = append(result, v)
			changed = true
		}
	}

	return result, changed
}

// Difference returns a without any element of b. The second result reports
// whether anything was removed.
func Difference[T comparable](a []T, b ...T) ([]T, bool) {
	result := make([]T, 0, len(a))
	for _, v := range a {
		if !slices.Contains(b, v) {
			result = append(result, v)
		}
	}

	return result, len(result) != len(a)
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// PaginationLimit clamps a requested page size.
func PaginationLimit(limit, defaultLimit, maxLimit int) int {
	if limit <= 0 {
		return defaultLimit
	}

	if limit > maxLimit {
		return maxLimit
	}

	return limit
}
