package triegraph

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/triegraph/triegraph/kmer"
)

func TestLoadConfigDefaults(t *testing.T) {
	v := viper.New()
	BindDefaults(v)

	cfg, err := LoadConfig(v)
	require.NoError(t, err)
	require.Equal(t, 12, cfg.TrieDepth)
	require.Equal(t, AlgoBT, cfg.AlgoFast)
	require.Equal(t, AlgoPBFS, cfg.AlgoSlow)
	require.Equal(t, BuildSimple, cfg.Mode)
	require.Equal(t, 500, cfg.LBFSSetCutoff)
	require.Equal(t, uint64(0), cfg.PBFSCutEarlyThreshold)
	require.Equal(t, uint64(1), cfg.CCBackedgeInit)
	require.Equal(t, 2, cfg.CCBackedgeMaxTrav)
	require.Equal(t, uint64(0), cfg.ComplexityThreshold)
	require.Equal(t, uint(kmer.DefaultOnMaskBit), cfg.TrieKmerOnMaskBit)

	settings, err := cfg.KmerSettings(1 << 20)
	require.NoError(t, err)
	require.Equal(t, 12, settings.K)
}

func TestLoadConfigRejectsUnsupportedOnMaskBit(t *testing.T) {
	v := viper.New()
	BindDefaults(v)
	v.Set("trie-kmer-on-mask", 40)

	cfg, err := LoadConfig(v)
	require.NoError(t, err)

	_, err = cfg.KmerSettings(1 << 20)
	require.Error(t, err)
}

func TestLoadConfigRejectsUnknownAlgo(t *testing.T) {
	v := viper.New()
	BindDefaults(v)
	v.Set("algo-fast", "bogus")

	_, err := LoadConfig(v)
	require.Error(t, err)
}

func TestLoadConfigRejectsBadAlphabet(t *testing.T) {
	v := viper.New()
	BindDefaults(v)
	v.Set("alphabet-size", 6)

	_, err := LoadConfig(v)
	require.Error(t, err)
}

func TestResolvedTrieDepthFixed(t *testing.T) {
	cfg := Config{TrieDepth: 8, TrieDepthRel: 0}
	require.Equal(t, 8, cfg.ResolvedTrieDepth(1000, 4))
}

func TestResolvedTrieDepthRelative(t *testing.T) {
	cfg := Config{TrieDepthRel: 0.5}
	d := cfg.ResolvedTrieDepth(1<<20, 4) // log4(2^20) == 10
	require.Equal(t, 5, d)
}
