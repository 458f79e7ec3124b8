package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"vrp-route-service/internal/domain"
	"vrp-route-service/internal/platform/obs"
	"vrp-route-service/internal/ports"
)

// DistanceMatrix holds integer meter costs between every pair of nodes.
// It is square, symmetric and zero on the diagonal, and read-only once built.
type DistanceMatrix [][]int64

// Size returns the number of nodes covered by the matrix.
func (m DistanceMatrix) Size() int { return len(m) }

func (m DistanceMatrix) At(from, to int) int64 { return m[from][to] }

// BuildDistanceMatrix applies provider pairwise over points (depot first).
//
// Distances are truncated to whole meters, not rounded. Only the upper triangle is
// computed and mirrored, so the result is symmetric whatever the provider's rounding.
// With workers > 1 rows are computed concurrently; the result does not depend on it.
// A negative, NaN or out-of-range distance from the provider is an error.
func BuildDistanceMatrix(
	ctx context.Context,
	points []domain.Coordinates,
	provider ports.DistanceProvider,
	workers int,
) (_ DistanceMatrix, err error) {
	defer obs.Time(ctx, "services.BuildDistanceMatrix")(&err)

	if provider == nil {
		return nil, errors.New("build distance matrix: provider must be non-nil")
	}
	n := len(points)
	if n == 0 {
		return nil, errors.New("build distance matrix: points must not be empty")
	}

	m := make(DistanceMatrix, n)
	for i := range m {
		m[i] = make([]int64, n)
	}

	// Prefer a single origin->many lookup when supported.
	mp, hasMatrix := provider.(ports.DistanceMatrixProvider)

	fillRow := func(i int) error {
		var row []float64
		if hasMatrix {
			row = mp.Distances(points[i], points[i+1:])
		} else {
			row = make([]float64, 0, n-i-1)
			for _, p := range points[i+1:] {
				row = append(row, provider.Distance(points[i], p))
			}
		}
		for off, d := range row {
			j := i + 1 + off
			// Also rejects NaN and values int64 cannot hold.
			if !(d >= 0 && d < math.MaxInt64) {
				return fmt.Errorf("distance %d->%d is %v", i, j, d)
			}
			c := int64(d)
			m[i][j] = c
			m[j][i] = c
		}
		return nil
	}

	if workers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("build distance matrix: %w", err)
			}
			if err := fillRow(i); err != nil {
				return nil, fmt.Errorf("build distance matrix: %w", err)
			}
		}
		return m, nil
	}

	// Each row writes m[i][j>i] and m[j>i][i]; no two rows touch the same cell.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fillRow(i)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build distance matrix: %w", err)
	}

	return m, nil
}
