package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type color string

type priority int

var (
	red  = New(color("r"), "red")
	blue = New(color("b"), "blue")

	low  = New(priority(1), "low")
	high = New(priority(9), "high")
)

func TestToEnum(t *testing.T) {
	c, err := ToEnum[color]("blue")
	require.NoError(t, err)
	require.Equal(t, blue, c)

	p, err := ToEnum[priority]("high")
	require.NoError(t, err)
	require.Equal(t, high, p)

	// Lookups go by the registered text, not by the underlying value.
	_, err = ToEnum[color]("r")
	require.Error(t, err)

	type unregistered string
	_, err = ToEnum[unregistered]("red")
	require.Error(t, err)
}

func TestToString(t *testing.T) {
	require.Equal(t, "red", ToString(red))
	require.Equal(t, "low", ToString(low))
	require.Equal(t, "", ToString(color("g")))
	require.Equal(t, "", ToString(priority(5)))
}
