package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWipeByteArray_Overwrites(t *testing.T) {
	b := []byte("hunter2")
	WipeByteArray(b)
	for i := range b {
		require.Zero(t, b[i])
	}
}

func TestWipeByteArray_NilIsNoop(t *testing.T) {
	require.NotPanics(t, func() { WipeByteArray(nil) })
}
