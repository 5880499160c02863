package kmer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSettingsWithOnMaskBitAcceptsDefault(t *testing.T) {
	s, err := NewSettingsWithOnMaskBit(4, 2, DefaultOnMaskBit)
	require.NoError(t, err)
	require.Equal(t, 4, s.K)
}

func TestNewSettingsWithOnMaskBitRejectsOther(t *testing.T) {
	_, err := NewSettingsWithOnMaskBit(4, 2, 40)
	require.Error(t, err)
}

func TestNewSettingsUsesDefaultOnMaskBit(t *testing.T) {
	viaDefault, err := NewSettings(4, 2)
	require.NoError(t, err)
	viaExplicit, err := NewSettingsWithOnMaskBit(4, 2, DefaultOnMaskBit)
	require.NoError(t, err)
	require.Equal(t, viaDefault.onMask, viaExplicit.onMask)
}
