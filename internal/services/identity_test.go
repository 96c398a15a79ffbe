package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentityHashDeterministic(t *testing.T) {
	h := NewIdentityHasher("test-salt")

	first := h.Hash("203.0.113.9")
	second := h.Hash("203.0.113.9")
	require.Equal(t, first, second)
	require.Len(t, first, 64)
}

func TestIdentityHashVariesByAddress(t *testing.T) {
	h := NewIdentityHasher("test-salt")
	require.NotEqual(t, h.Hash("203.0.113.9"), h.Hash("203.0.113.10"))
}

func TestIdentityHashVariesBySalt(t *testing.T) {
	a := NewIdentityHasher("salt-a")
	b := NewIdentityHasher("salt-b")
	require.NotEqual(t, a.Hash("203.0.113.9"), b.Hash("203.0.113.9"))
}
