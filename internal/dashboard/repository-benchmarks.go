package dashboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/myrjola/boxlevels/internal/leveling"
)

// sqliteBenchmarkRepository implements BenchmarkRepository.
type sqliteBenchmarkRepository struct {
	baseRepository
}

// ListBenchmarks returns the benchmark table in insertion order.
func (r *sqliteBenchmarkRepository) ListBenchmarks(ctx context.Context) (_ []leveling.BenchmarkRow, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT exercise, gender, base, beginner, intermediate, good, elite
		FROM benchmarks
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query benchmarks: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var benchmarks []leveling.BenchmarkRow
	for rows.Next() {
		var (
			row        leveling.BenchmarkRow
			thresholds [5]sql.NullString
		)
		if err = rows.Scan(&row.Exercise, &row.Gender,
			&thresholds[0], &thresholds[1], &thresholds[2], &thresholds[3], &thresholds[4]); err != nil {
			return nil, fmt.Errorf("scan benchmark: %w", err)
		}
		row.Thresholds = make(map[leveling.Tier]string, len(thresholds))
		for i, tier := range leveling.Tiers() {
			if thresholds[i].Valid {
				row.Thresholds[tier] = thresholds[i].String
			}
		}
		benchmarks = append(benchmarks, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return benchmarks, nil
}

// SaveBenchmark creates or updates the row with the same canonical exercise and gender.
func (r *sqliteBenchmarkRepository) SaveBenchmark(ctx context.Context, row leveling.BenchmarkRow) error {
	if err := upsertBenchmark(ctx, r.db.ReadWrite, row); err != nil {
		return fmt.Errorf("upsert benchmark: %w", err)
	}
	return nil
}

func upsertBenchmark(ctx context.Context, db execer, row leveling.BenchmarkRow) error {
	threshold := func(tier leveling.Tier) sql.NullString {
		v, ok := row.Thresholds[tier]
		return sql.NullString{String: v, Valid: ok}
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO benchmarks (exercise, canonical_exercise, gender, base, beginner, intermediate, good, elite)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (canonical_exercise, gender) DO UPDATE SET
			exercise = excluded.exercise,
			base = excluded.base,
			beginner = excluded.beginner,
			intermediate = excluded.intermediate,
			good = excluded.good,
			elite = excluded.elite`,
		row.Exercise, leveling.Normalize(row.Exercise), string(row.Gender),
		threshold(leveling.TierBase),
		threshold(leveling.TierBeginner),
		threshold(leveling.TierIntermediate),
		threshold(leveling.TierGood),
		threshold(leveling.TierElite),
	)
	if err != nil {
		return fmt.Errorf("insert benchmark: %w", err)
	}
	return nil
}
