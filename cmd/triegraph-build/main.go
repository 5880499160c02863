// Command triegraph-build constructs a trie-graph index from a GFA or FASTA
// variation graph and reports index statistics. It is a thin cobra/viper CLI
// over the root triegraph package: flag parsing and logging are the only
// concerns that live here.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/triegraph/triegraph/dna"
	"github.com/triegraph/triegraph/graph"

	triegraphlib "github.com/triegraph/triegraph"
)

var (
	log = logrus.New()
	v   = viper.New()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Fatal("triegraph-build failed")
	}
}

func newRootCmd() *cobra.Command {
	var inputPath, inputFormat, alphabet string

	cmd := &cobra.Command{
		Use:   "triegraph-build [graph file]",
		Short: "Build a trie-graph index over a GFA or FASTA variation graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath = args[0]
			return run(inputPath, inputFormat, alphabet)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("format", "", "input format: gfa or fasta (default: inferred from extension)")
	flags.Int("trie-depth", 12, "indexed k-mer length (K)")
	flags.Float64("trie-depth-rel", 0, "if > 0, scale K to graph size instead of using --trie-depth")
	flags.String("alphabet", "acgt", "acgt or acgtn")
	flags.Uint64("complexity-threshold", 0, "in-flight k-mer threshold marking a node hot (0: automatic)")
	flags.String("algo-fast", "bt", "algorithm for the rest of the graph, outside complexity components: lbfs, bt, pbfs, nbfs")
	flags.String("algo-slow", "pbfs", "algorithm for hot complexity components: lbfs, bt, pbfs, nbfs")
	flags.String("build-mode", "simple", "simple, dual-dense or zero-overhead")
	flags.Bool("twins", false, "add reverse-complement twin nodes before indexing")
	flags.String("log-level", "info", "trace, debug, info, warn, error")

	if err := v.BindPFlags(flags); err != nil {
		log.WithError(err).Fatal("binding flags")
	}
	// --complexity-threshold feeds the cc-cutoff key that LoadConfig reads.
	if err := v.BindPFlag("cc-cutoff", flags.Lookup("complexity-threshold")); err != nil {
		log.WithError(err).Fatal("binding flags")
	}
	triegraphlib.BindDefaults(v)
	v.SetEnvPrefix("TRIEGRAPH")
	v.AutomaticEnv()

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(v.GetString("log-level"))
		if err != nil {
			return err
		}
		log.SetLevel(level)
		inputFormat = v.GetString("format")
		alphabet = v.GetString("alphabet")
		return nil
	}

	return cmd
}

func run(inputPath, format, alphabet string) error {
	cfg, err := triegraphlib.LoadConfig(v)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	triegraphlib.SetLogger(log)

	alpha := dna.DefaultAlphabet
	if strings.EqualFold(alphabet, "acgtn") {
		alpha = dna.NewAlphabet(5)
	}

	if format == "" {
		format = inferFormat(inputPath)
	}

	log.WithFields(logrus.Fields{
		"input":  inputPath,
		"format": format,
	}).Info("loading graph")

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inputPath, err)
	}
	defer f.Close()

	var g *graph.AdjacencyGraph
	switch format {
	case "gfa":
		g, err = graph.FromGFA(f, alpha)
	case "fasta", "fa":
		g, err = graph.FromFASTA(f, alpha)
	default:
		return fmt.Errorf("unsupported format %q (want gfa or fasta)", format)
	}
	if err != nil {
		return fmt.Errorf("parsing %s: %w", inputPath, err)
	}

	if v.GetBool("twins") {
		g = graph.WithTwins(g, alpha)
	}
	log.WithField("nodes", g.NumNodes()).Info("graph loaded")

	locIdx := triegraphlib.BuildLetterLocIndex(g, 0)
	kmerSettings, err := cfg.KmerSettings(locIdx.NumLocations())
	if err != nil {
		return fmt.Errorf("configuring k-mer settings: %w", err)
	}
	log.WithFields(logrus.Fields{
		"k":             kmerSettings.K,
		"num_locations": locIdx.NumLocations(),
	}).Info("building trie-graph index")

	ts := time.Now()
	ccCfg := cfg.ComplexityConfig(kmerSettings)
	tg := triegraphlib.BuildTrieGraphAuto(g, kmerSettings, cfg.Mode, ccCfg,
		cfg.AlgoFast, cfg.AlgoSlow, cfg.LBFSSetCutoff, cfg.PBFSCutEarlyThreshold)
	log.WithField("elapsed", time.Since(ts)).Info("index built")

	fmt.Printf("nodes=%d locations=%d trie-present=%d\n",
		g.NumNodes(), locIdx.NumLocations(), tg.Data().Presence().Count())
	return nil
}

func inferFormat(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".gfa"):
		return "gfa"
	case strings.HasSuffix(lower, ".fasta"), strings.HasSuffix(lower, ".fa"), strings.HasSuffix(lower, ".fna"):
		return "fasta"
	default:
		return ""
	}
}
