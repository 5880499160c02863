package triegraph

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/triegraph/triegraph/kmer"
)

// Config is the process-wide index-build configuration, bound from flags,
// environment, and config file via viper by cmd/triegraph-build.
type Config struct {
	// TrieDepth is K, the indexed k-mer length.
	TrieDepth int
	// TrieDepthRel, if > 0, overrides TrieDepth with
	// int(TrieDepthRel * ceil(log_sigma(graph size))), truncated toward zero
	// and at least 1, letting depth scale with graph size instead of being a
	// fixed constant.
	TrieDepthRel float64
	// TrieKmerOnMaskBit is the k-mer word's on-mask bit position (config key
	// trie-kmer-on-mask). kmer.NewSettingsWithOnMaskBit rejects anything but
	// kmer.DefaultOnMaskBit, since the packed word layout has no room for
	// the on-mask anywhere else; the key exists so that constraint is
	// enforced explicitly rather than assumed silently.
	TrieKmerOnMaskBit uint
	// AlphabetSize is 4 (ACGT) or 5 (ACGTN).
	AlphabetSize int
	// ComplexityThreshold feeds ComplexityConfig.Cutoff (config key
	// cc-cutoff); 0 means "use DefaultComplexityConfig".
	ComplexityThreshold uint64
	// CCBackedgeInit seeds every node's starts/ends score before the capped
	// back-edge relaxation pass runs on a cyclic graph.
	CCBackedgeInit uint64
	// CCBackedgeMaxTrav bounds how many relaxation passes the back-edge
	// fallback runs before giving up and keeping whatever score it has.
	CCBackedgeMaxTrav int
	// AlgoFast is the algorithm used on non_cc_starts (the bulk of the
	// graph, outside any complexity component).
	AlgoFast Algo
	// AlgoSlow is the algorithm used on cc_starts (inside a complexity
	// component).
	AlgoSlow Algo
	// LBFSSetCutoff is the per-location live-kmer-set size past which
	// lbfsSet switches from a linear scan to a hash map.
	LBFSSetCutoff int
	// PBFSCutEarlyThreshold bounds a node's in-flight carry count during a
	// point-BFS build; 0 disables the cutoff. See buildPBFSFromLocs.
	PBFSCutEarlyThreshold uint64
	// Mode selects how TrieData is assembled (see BuildMode).
	Mode BuildMode
}

const (
	keyTrieDepth             = "trie-depth"
	keyTrieDepthRel          = "trie-depth-rel"
	keyTrieKmerOnMask        = "trie-kmer-on-mask"
	keyAlphabetSize          = "alphabet-size"
	keyCCCutoff              = "cc-cutoff"
	keyCCBackedgeInit        = "cc-backedge-init"
	keyCCBackedgeMaxTrav     = "cc-backedge-max-trav"
	keyAlgoFast              = "algo-fast"
	keyAlgoSlow              = "algo-slow"
	keyLBFSSetCutoff         = "trie-builder-lbfs-set-cutoff"
	keyPBFSCutEarlyThreshold = "trie-builder-pbfs-cut-early-threshold"
	keyBuildMode             = "build-mode"
)

// BindDefaults registers every key's default with v, so a fresh viper
// instance is usable even with no flags, env, or config file set.
func BindDefaults(v *viper.Viper) {
	v.SetDefault(keyTrieDepth, 12)
	v.SetDefault(keyTrieDepthRel, 0.0)
	v.SetDefault(keyTrieKmerOnMask, kmer.DefaultOnMaskBit)
	v.SetDefault(keyAlphabetSize, 4)
	v.SetDefault(keyCCCutoff, 0)
	v.SetDefault(keyCCBackedgeInit, 1)
	v.SetDefault(keyCCBackedgeMaxTrav, 2)
	// AlgoFast runs over non_cc_starts (most of the graph), so it defaults
	// to the cheap single-pass walk; AlgoSlow only ever sees cc_starts, the
	// fan-out-heavy minority the fast walk can't safely batch.
	v.SetDefault(keyAlgoFast, "bt")
	v.SetDefault(keyAlgoSlow, "pbfs")
	v.SetDefault(keyLBFSSetCutoff, 500)
	v.SetDefault(keyPBFSCutEarlyThreshold, 0)
	v.SetDefault(keyBuildMode, "simple")
}

// LoadConfig reads v into a Config, validating algorithm names and alphabet
// size.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		TrieDepth:             v.GetInt(keyTrieDepth),
		TrieDepthRel:          v.GetFloat64(keyTrieDepthRel),
		TrieKmerOnMaskBit:     uint(v.GetInt(keyTrieKmerOnMask)),
		AlphabetSize:          v.GetInt(keyAlphabetSize),
		ComplexityThreshold:   v.GetUint64(keyCCCutoff),
		CCBackedgeInit:        v.GetUint64(keyCCBackedgeInit),
		CCBackedgeMaxTrav:     v.GetInt(keyCCBackedgeMaxTrav),
		LBFSSetCutoff:         v.GetInt(keyLBFSSetCutoff),
		PBFSCutEarlyThreshold: v.GetUint64(keyPBFSCutEarlyThreshold),
	}
	if cfg.AlphabetSize != 4 && cfg.AlphabetSize != 5 {
		return Config{}, fmt.Errorf("triegraph: %s must be 4 or 5, got %d", keyAlphabetSize, cfg.AlphabetSize)
	}

	fast, err := parseAlgo(v.GetString(keyAlgoFast))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", keyAlgoFast, err)
	}
	slow, err := parseAlgo(v.GetString(keyAlgoSlow))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", keyAlgoSlow, err)
	}
	cfg.AlgoFast, cfg.AlgoSlow = fast, slow

	mode, err := parseBuildMode(v.GetString(keyBuildMode))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", keyBuildMode, err)
	}
	cfg.Mode = mode

	return cfg, nil
}

func parseAlgo(s string) (Algo, error) {
	switch s {
	case "lbfs":
		return AlgoLBFS, nil
	case "bt":
		return AlgoBT, nil
	case "pbfs":
		return AlgoPBFS, nil
	case "nbfs":
		return AlgoNBFS, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q (want lbfs, bt, pbfs or nbfs)", s)
	}
}

func parseBuildMode(s string) (BuildMode, error) {
	switch s {
	case "simple":
		return BuildSimple, nil
	case "dual-dense":
		return BuildDualDense, nil
	case "zero-overhead":
		return BuildZeroOverhead, nil
	default:
		return 0, fmt.Errorf("unknown build mode %q (want simple, dual-dense or zero-overhead)", s)
	}
}

// ResolvedTrieDepth returns TrieDepth, or the TrieDepthRel-scaled depth
// against numLocs if TrieDepthRel > 0.
func (c Config) ResolvedTrieDepth(numLocs Loc, alpha int) int {
	if c.TrieDepthRel <= 0 {
		return c.TrieDepth
	}
	depth := 0
	size := uint64(1)
	for size < uint64(numLocs) {
		size *= uint64(alpha)
		depth++
	}
	scaled := int(c.TrieDepthRel * float64(depth))
	if scaled < 1 {
		scaled = 1
	}
	return scaled
}

// KmerSettings builds kmer.Settings from the config, against a known
// location count (for TrieDepthRel resolution).
func (c Config) KmerSettings(numLocs Loc) (kmer.Settings, error) {
	bitsPerLetter := uint(2)
	if c.AlphabetSize == 5 {
		bitsPerLetter = 3
	}
	depth := c.ResolvedTrieDepth(numLocs, 1<<bitsPerLetter)
	return kmer.NewSettingsWithOnMaskBit(depth, bitsPerLetter, c.TrieKmerOnMaskBit)
}

// ComplexityConfig builds the ComplexityConfig this Config specifies,
// falling back to the package default cutoff when ComplexityThreshold is 0.
func (c Config) ComplexityConfig(s kmer.Settings) ComplexityConfig {
	cfg := DefaultComplexityConfig(s)
	if c.ComplexityThreshold > 0 {
		cfg.Cutoff = c.ComplexityThreshold
	}
	cfg.BackedgeInit = c.CCBackedgeInit
	cfg.BackedgeMaxTrav = c.CCBackedgeMaxTrav
	return cfg
}
