package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davral/wordforge/internal/config"
	"github.com/davral/wordforge/internal/orchestrator"
	"github.com/davral/wordforge/internal/space"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	configPath   string
	pattern      string
	permutations string
	prefix       string
	suffix       string
	output       string
	limit        uint64
	resume       bool
	workers      int
	throttle     int
	verbose      bool
)

var warnColor = color.New(color.FgYellow)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wordforge [minLen maxLen [charset]]",
		Short: "wordforge - resumable combinatorial wordlist generator",
		Long: `wordforge enumerates candidate words over a combinatorial space and
streams them to a wordlist file. It supports fixed-length combinations over
a character set, pattern-defined per-position classes, and permutations of
a fixed string, with exact size computation and checkpointed resume for
interrupted runs.`,
		Example: `  # Generate 4-5 character lowercase words
  wordforge 4 5

  # Numeric charset with a prefix, saved to pins.txt
  wordforge 4 4 "0123456789" -p "PIN" -o pins.txt

  # Pattern classes: '@' lowercase, '%' digits, '^' punctuation
  wordforge 8 8 -t "@@@@^%"

  # All permutations of a string
  wordforge -x pass123 -o perms.txt

  # Resume a large, interrupted job
  wordforge 8 8 "0123456789abcdef" -o biglist.txt --resume`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Args:         cobra.MaximumNArgs(3),
		SilenceUsage: true,
		RunE:         runGeneration,
	}

	rootCmd.Flags().StringVarP(&pattern, "pattern", "t", "", "Pattern for generation (e.g. \"@@@%%^\"); overrides charset")
	rootCmd.Flags().StringVarP(&permutations, "permutations", "x", "", "Generate all permutations of the given string")
	rootCmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Prefix for each word")
	rootCmd.Flags().StringVarP(&suffix, "suffix", "s", "", "Suffix for each word")
	rootCmd.Flags().StringVarP(&output, "output", "o", config.DefaultOutput, "Output file name")
	rootCmd.Flags().Uint64VarP(&limit, "limit", "l", 0, "Maximum number of words to generate")
	rootCmd.Flags().BoolVar(&resume, "resume", false, "Resume an interrupted session")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to optional TOML configuration file")
	rootCmd.Flags().IntVar(&workers, "workers", 1, "Shard workers; >1 writes one shard file per worker")
	rootCmd.Flags().IntVar(&throttle, "throttle", 0, "Cap generation at N words per second (0 = unlimited)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runGeneration(cmd *cobra.Command, args []string) error {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	// Command-line flags win over file values.
	flags := cmd.Flags()
	if !flags.Changed("output") {
		output = cfg.Output
	}
	if !flags.Changed("prefix") {
		prefix = cfg.Prefix
	}
	if !flags.Changed("suffix") {
		suffix = cfg.Suffix
	}
	if !flags.Changed("workers") {
		workers = cfg.Workers
	}
	if !flags.Changed("throttle") {
		throttle = cfg.Throttle
	}

	spec, err := buildSpec(args, cfg)
	if err != nil {
		return err
	}

	if resume && workers > 1 {
		return orchestrator.ErrShardedResume
	}

	orch := orchestrator.New(orchestrator.Options{
		Spec:               spec,
		Output:             output,
		Prefix:             prefix,
		Suffix:             suffix,
		Limit:              limit,
		Resume:             resume,
		CheckpointInterval: cfg.CheckpointInterval,
		Throttle:           throttle,
		Workers:            workers,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := orch.Run(ctx)
	if err != nil {
		return err
	}

	switch res.Outcome {
	case orchestrator.OutcomePaused:
		if workers > 1 {
			warnf("Cancelled. Shard files are partial and cannot be resumed.")
		} else {
			warnf("Paused. Progress for %d words saved to %s.", res.Count, orch.SessionPath())
			warnf("To continue, run the same command with the --resume flag.")
		}
	default:
		fmt.Printf("[+] Generation complete. Total time: %.2f seconds.\n", res.Elapsed.Seconds())
		fmt.Printf("[+] Wordlist saved to '%s'\n", strings.Join(res.Outputs, "', '"))
	}
	return nil
}

// buildSpec resolves the generation mode with the documented precedence:
// permutations > pattern > charset/length. Shadowed arguments are ignored
// with a warning rather than rejected.
func buildSpec(args []string, cfg *config.Config) (*space.Spec, error) {
	if permutations != "" {
		if len(args) > 0 || pattern != "" {
			warnf("Length and pattern arguments are ignored for permutations.")
		}
		return space.NewPermutations(permutations)
	}

	if len(args) < 2 {
		return nil, fmt.Errorf("minLen and maxLen are required unless --permutations is used")
	}
	minLen, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid minimum length %q", args[0])
	}
	maxLen, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("invalid maximum length %q", args[1])
	}
	if minLen > maxLen {
		return nil, fmt.Errorf("minimum length cannot exceed maximum length")
	}

	if pattern != "" {
		if len(args) == 3 {
			warnf("The charset argument is ignored when a pattern is specified.")
		}
		return space.NewPattern(pattern, cfg.PatternClasses())
	}

	charset := space.LowercaseLetters
	if len(args) == 3 {
		charset = args[2]
	}
	return space.NewCombinations(charset, minLen, maxLen)
}

func warnf(format string, a ...any) {
	_, _ = warnColor.Fprintf(os.Stderr, "[!] Warning: "+format+"\n", a...)
}
