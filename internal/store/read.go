package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/gatesimp/internal/ir"
)

const reductionColumns = `rule_set_hash, input_hash, input, output, removed, run_id, engine_version`

// ReadReduction looks up a memoized run by its content key.
// Returns an error satisfying IsNotFound if the key is not stored.
func (s *Store) ReadReduction(ctx context.Context, ruleSetHash, inputHash string) (ir.Reduction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+reductionColumns+`
		FROM reductions
		WHERE rule_set_hash = ? AND input_hash = ?
	`, ruleSetHash, inputHash)

	red, err := scanReduction(row)
	if err != nil {
		return ir.Reduction{}, fmt.Errorf("read reduction: %w", err)
	}
	return red, nil
}

// ListReductions returns stored runs in insertion order. An empty
// ruleSetHash lists every run; otherwise only runs of that rule set.
// limit <= 0 means no limit.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) ListReductions(ctx context.Context, ruleSetHash string, limit int) ([]ir.Reduction, error) {
	query := `SELECT ` + reductionColumns + ` FROM reductions`
	var args []any
	if ruleSetHash != "" {
		query += ` WHERE rule_set_hash = ?`
		args = append(args, ruleSetHash)
	}
	query += ` ORDER BY id ASC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reductions: %w", err)
	}
	defer rows.Close()

	reductions := []ir.Reduction{}
	for rows.Next() {
		red, err := scanReduction(rows)
		if err != nil {
			return nil, err
		}
		reductions = append(reductions, red)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reductions: %w", err)
	}
	return reductions, nil
}

// ReadFirings returns the firings of a stored run ordered by seq.
//
// Returns an empty slice (not nil) if the run has no firings or is unknown.
func (s *Store) ReadFirings(ctx context.Context, runID string) ([]ir.Firing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, rule_id, matched, replacement
		FROM firings
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query firings: %w", err)
	}
	defer rows.Close()

	firings := []ir.Firing{}
	for rows.Next() {
		var (
			f                    ir.Firing
			matched, replacement string
		)
		if err := rows.Scan(&f.Seq, &f.RuleID, &matched, &replacement); err != nil {
			return nil, fmt.Errorf("scan firing: %w", err)
		}
		if f.Window, err = unmarshalSymbols(matched); err != nil {
			return nil, err
		}
		if f.Replacement, err = unmarshalSymbols(replacement); err != nil {
			return nil, err
		}
		firings = append(firings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate firings: %w", err)
	}
	return firings, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReduction(row rowScanner) (ir.Reduction, error) {
	var (
		red           ir.Reduction
		input, output string
	)
	err := row.Scan(
		&red.RuleSetHash,
		&red.InputHash,
		&input,
		&output,
		&red.Removed,
		&red.RunID,
		&red.EngineVersion,
	)
	if err == sql.ErrNoRows {
		return ir.Reduction{}, err
	}
	if err != nil {
		return ir.Reduction{}, fmt.Errorf("scan reduction: %w", err)
	}

	if red.Input, err = unmarshalSymbols(input); err != nil {
		return ir.Reduction{}, err
	}
	if red.Output, err = unmarshalSymbols(output); err != nil {
		return ir.Reduction{}, err
	}
	return red, nil
}
