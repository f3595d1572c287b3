package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	t.Run("first match", func(t *testing.T) {
		require.Equal(t, 1, FindIndex([]string{"a", "b", "b"}, "b"))
	})

	t.Run("missing", func(t *testing.T) {
		require.Equal(t, -1, FindIndex([]int{1, 2, 3}, 4))
		require.Equal(t, -1, FindIndex(nil, 4))
	})
}

func TestArgMax(t *testing.T) {
	identity := func(v int) int { return v }

	t.Run("earliest maximum wins", func(t *testing.T) {
		require.Equal(t, 1, ArgMax([]int{3, 9, 2, 9}, identity, nil))
	})

	t.Run("negative keys", func(t *testing.T) {
		require.Equal(t, 2, ArgMax([]int{-5, -7, -1}, identity, nil))
	})

	t.Run("filtered", func(t *testing.T) {
		even := func(v int) bool { return v%2 == 0 }
		require.Equal(t, 2, ArgMax([]int{3, 9, 2, 9}, identity, even))
		require.Equal(t, -1, ArgMax([]int{3, 9}, identity, even))
		require.Equal(t, -1, ArgMax(nil, identity, nil))
	})
}
