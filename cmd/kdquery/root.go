package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/TrevorS/kdtree"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// tree is the tree type every subcommand queries.
type tree = kdtree.Tree[float64, kdtree.VecN[float64], int]

// options holds the flags shared by all subcommands.
type options struct {
	pointsPath  string
	logLevel    string
	threshold   int
	parallelism int
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "kdquery",
		Short:        "Query a point set with a k-d tree",
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.pointsPath, "points", "p", "", "point file, one point per line")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error, disabled)")
	pf.IntVar(&opts.threshold, "threshold", kdtree.DefaultParallelThreshold, "subtree size above which halves are built concurrently")
	pf.IntVar(&opts.parallelism, "parallelism", 0, "maximum concurrent build goroutines (0 = GOMAXPROCS)")
	_ = cmd.MarkPersistentFlagRequired("points")

	cmd.AddCommand(
		newStatsCmd(opts),
		newNearestCmd(opts),
		newKNNCmd(opts),
		newRadiusCmd(opts),
		newBatchCmd(opts),
	)
	return cmd
}

// newLogger writes human-readable logs to terminals and JSON everywhere
// else.
func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid --log-level: %w", err)
	}
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		w = zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// load reads the point file and builds the tree.
func (o *options) load(cmd *cobra.Command) (*tree, zerolog.Logger, error) {
	logger, err := newLogger(cmd.ErrOrStderr(), o.logLevel)
	if err != nil {
		return nil, logger, err
	}

	f, err := os.Open(o.pointsPath)
	if err != nil {
		return nil, logger, err
	}
	defer f.Close()

	pts, err := readPoints(f)
	if err != nil {
		return nil, logger, fmt.Errorf("%s: %w", o.pointsPath, err)
	}

	t, err := kdtree.New[float64, kdtree.VecN[float64], int](pts, nil, kdtree.Config{
		ParallelThreshold: o.threshold,
		MaxParallelism:    o.parallelism,
		Logger:            &logger,
	})
	if err != nil {
		return nil, logger, err
	}
	logger.Info().
		Str("path", o.pointsPath).
		Int("points", t.Len()).
		Int("dims", t.Dims()).
		Msg("points loaded")
	return t, logger, nil
}
