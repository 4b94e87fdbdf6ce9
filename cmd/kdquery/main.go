// Command kdquery loads a point file into a k-d tree and answers nearest
// neighbor and radius queries against it.
//
// Point files hold one point per line, coordinates separated by commas or
// whitespace. Blank lines and lines starting with # are skipped.
//
//	kdquery --points cloud.txt stats
//	kdquery --points cloud.txt nearest --query 1,2,3
//	kdquery --points cloud.txt knn --query 1,2,3 -k 5
//	kdquery --points cloud.txt radius --query 1,2,3 --radius 0.5
//	kdquery --points cloud.txt batch --queries probes.txt -k 3
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
