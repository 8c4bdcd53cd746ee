package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	require.Equal(t,
		"https://cdn.example.com/campus/users/u1/1700000000_me.png",
		PublicURL("https://cdn.example.com/", "campus", "users/u1/1700000000_me.png"),
	)

	require.Equal(t,
		"http://localhost:9000/campus/boards/b1/1700000000_lecture%20notes%3F.png",
		PublicURL("http://localhost:9000", "campus", "boards/b1/1700000000_lecture notes?.png"),
	)
}
