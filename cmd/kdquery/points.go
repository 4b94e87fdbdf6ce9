package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/TrevorS/kdtree"
)

var errNoPoints = errors.New("no points")

// readPoints parses one point per line. All points must share the
// dimensionality of the first.
func readPoints(r io.Reader) ([]kdtree.VecN[float64], error) {
	var pts []kdtree.VecN[float64]
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		p, err := parsePoint(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(pts) > 0 && len(p) != len(pts[0]) {
			return nil, fmt.Errorf("line %d: got %d coordinates, want %d", line, len(p), len(pts[0]))
		}
		pts = append(pts, p)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		return nil, errNoPoints
	}
	return pts, nil
}

// parsePoint parses coordinates separated by commas or whitespace.
func parsePoint(s string) (kdtree.VecN[float64], error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return nil, errors.New("empty point")
	}
	p := make(kdtree.VecN[float64], len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate %d: %w", i, err)
		}
		p[i] = v
	}
	return p, nil
}

// parseQuery parses a query point and checks it against the tree's
// dimensionality.
func parseQuery(s string, dims int) (kdtree.VecN[float64], error) {
	q, err := parsePoint(s)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}
	if len(q) != dims {
		return nil, fmt.Errorf("invalid --query: got %d coordinates, points have %d", len(q), dims)
	}
	return q, nil
}

func formatPoint(p kdtree.VecN[float64]) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
