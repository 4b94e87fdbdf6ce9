package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/TrevorS/kdtree"
	"github.com/spf13/cobra"
)

type neighbor = kdtree.Neighbor[float64, kdtree.VecN[float64], int]

// writeNeighbors prints one "index<TAB>distSq<TAB>coords" line per neighbor.
func writeNeighbors(w io.Writer, ns []neighbor) {
	for _, nb := range ns {
		fmt.Fprintf(w, "%d\t%g\t%s\n", nb.Index, nb.DistSq, formatPoint(nb.Pos))
	}
}

// radiusSq turns a --radius flag into a squared search radius. 0 means
// unbounded.
func radiusSq(r float64) (float64, error) {
	switch {
	case r < 0:
		return 0, fmt.Errorf("invalid --radius: %g must be >= 0", r)
	case r == 0:
		return math.Inf(1), nil
	}
	return r * r, nil
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the shape of the tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, _, err := opts.load(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "points:   %d\n", t.Len())
			fmt.Fprintf(out, "dims:     %d\n", t.Dims())
			fmt.Fprintf(out, "depth:    %d\n", t.Depth())
			fmt.Fprintf(out, "internal: %d\n", t.Internal())
			return nil
		},
	}
}

func newNearestCmd(opts *options) *cobra.Command {
	var query string
	var radius float64
	cmd := &cobra.Command{
		Use:   "nearest",
		Short: "Find the point closest to a query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r2, err := radiusSq(radius)
			if err != nil {
				return err
			}
			t, _, err := opts.load(cmd)
			if err != nil {
				return err
			}
			q, err := parseQuery(query, t.Dims())
			if err != nil {
				return err
			}
			nb, ok := t.NearestWithin(q, r2)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no point found")
				return nil
			}
			writeNeighbors(cmd.OutOrStdout(), []neighbor{nb})
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "query point, e.g. 1,2,3")
	cmd.Flags().Float64VarP(&radius, "radius", "r", 0, "search radius (0 = unbounded)")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}

func newKNNCmd(opts *options) *cobra.Command {
	var query string
	var radius float64
	var k int
	cmd := &cobra.Command{
		Use:   "knn",
		Short: "Find the k points closest to a query, nearest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if k < 1 {
				return fmt.Errorf("invalid -k: %d must be >= 1", k)
			}
			r2, err := radiusSq(radius)
			if err != nil {
				return err
			}
			t, _, err := opts.load(cmd)
			if err != nil {
				return err
			}
			q, err := parseQuery(query, t.Dims())
			if err != nil {
				return err
			}
			ns := t.KNearestWithin(q, k, r2, make([]neighbor, 0, k))
			kdtree.SortNeighbors(ns)
			writeNeighbors(cmd.OutOrStdout(), ns)
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "query point, e.g. 1,2,3")
	cmd.Flags().Float64VarP(&radius, "radius", "r", 0, "search radius (0 = unbounded)")
	cmd.Flags().IntVarP(&k, "k", "k", 1, "number of neighbors")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}

func newRadiusCmd(opts *options) *cobra.Command {
	var query string
	var radius float64
	cmd := &cobra.Command{
		Use:   "radius",
		Short: "List every point within a radius of a query, nearest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if radius <= 0 {
				return fmt.Errorf("invalid --radius: %g must be > 0", radius)
			}
			t, _, err := opts.load(cmd)
			if err != nil {
				return err
			}
			q, err := parseQuery(query, t.Dims())
			if err != nil {
				return err
			}
			ns := t.Within(q, radius*radius, nil)
			kdtree.SortNeighbors(ns)
			writeNeighbors(cmd.OutOrStdout(), ns)
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "query point, e.g. 1,2,3")
	cmd.Flags().Float64VarP(&radius, "radius", "r", 0, "search radius")
	_ = cmd.MarkFlagRequired("query")
	_ = cmd.MarkFlagRequired("radius")
	return cmd
}

func newBatchCmd(opts *options) *cobra.Command {
	var queriesPath string
	var k, workers int
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run a k-nearest query for every point in a file",
		Long: "Run a k-nearest query for every point in a file, spread across workers.\n" +
			"Prints one \"query<TAB>index<TAB>distSq\" line per neighbor, nearest first.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if k < 1 {
				return fmt.Errorf("invalid -k: %d must be >= 1", k)
			}
			t, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}

			f, err := os.Open(queriesPath)
			if err != nil {
				return err
			}
			defer f.Close()
			queries, err := readPoints(f)
			if err != nil {
				if errors.Is(err, errNoPoints) {
					return nil
				}
				return fmt.Errorf("%s: %w", queriesPath, err)
			}
			if len(queries[0]) != t.Dims() {
				return fmt.Errorf("%s: queries have %d coordinates, points have %d", queriesPath, len(queries[0]), t.Dims())
			}

			start := time.Now()
			results, err := t.KNearestBatch(cmd.Context(), queries, k, workers)
			if err != nil {
				return err
			}
			logger.Debug().
				Int("queries", len(queries)).
				Int("k", k).
				Int("workers", workers).
				Dur("elapsed", time.Since(start)).
				Msg("batch done")

			out := cmd.OutOrStdout()
			for i, ns := range results {
				for _, nb := range ns {
					fmt.Fprintf(out, "%d\t%d\t%g\n", i, nb.Index, nb.DistSq)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&queriesPath, "queries", "", "query file, same format as --points")
	cmd.Flags().IntVarP(&k, "k", "k", 1, "number of neighbors per query")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "query goroutines (0 = NumCPU)")
	_ = cmd.MarkFlagRequired("queries")
	return cmd
}
