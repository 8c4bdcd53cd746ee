package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeYearParam(t *testing.T) {
	testCases := []struct {
		in   string
		want int
	}{
		{in: "0", want: 1},
		{in: "abc", want: 1},
		{in: "5", want: 4},
		{in: "2", want: 2},
		{in: "", want: 1},
		{in: "-3", want: 1},
		{in: " 3 ", want: 3},
		{in: "4", want: 4},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.want, NormalizeYearParam(tc.in))
		})
	}
}

func TestUnion(t *testing.T) {
	got, changed := Union([]string{"a", "b"}, "b", "c")
	require.True(t, changed)
	require.Equal(t, []string{"a", "b", "c"}, got)

	got, changed = Union(got, "a")
	require.False(t, changed)
	require.Equal(t, []string{"a", "b", "c"}, got)

	got, changed = Union[string](nil, "a")
	require.True(t, changed)
	require.Equal(t, []string{"a"}, got)
}

func TestDifference(t *testing.T) {
	got, changed := Difference([]string{"a", "b", "c"}, "b")
	require.True(t, changed)
	require.Equal(t, []string{"a", "c"}, got)

	got, changed = Difference(got, "x")
	require.False(t, changed)
	require.Equal(t, []string{"a", "c"}, got)
}

func TestContainsFold(t *testing.T) {
	require.True(t, ContainsFold("Midterm Review Session", "term review"))
	require.True(t, ContainsFold("Midterm Review Session", "MIDTERM"))
	require.False(t, ContainsFold("Midterm Review Session", "final"))
}

func TestPaginationLimit(t *testing.T) {
	require.Equal(t, 20, PaginationLimit(0, 20, 50))
	require.Equal(t, 50, PaginationLimit(100, 20, 50))
	require.Equal(t, 7, PaginationLimit(7, 20, 50))
}
