package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/gatesimp/internal/ir"
)

// WriteReduction records a simplify run and its firings in one transaction.
//
// Uses ON CONFLICT(rule_set_hash, input_hash) DO NOTHING: if the key is
// already stored, nothing is written and the existing run ID is returned
// with inserted=false. Firings are only written for a newly inserted run.
func (s *Store) WriteReduction(ctx context.Context, red ir.Reduction, firings []ir.Firing) (runID string, inserted bool, err error) {
	if red.RunID == "" {
		return "", false, fmt.Errorf("write reduction: run ID is empty")
	}

	input, err := marshalSymbols(red.Input)
	if err != nil {
		return "", false, fmt.Errorf("write reduction: %w", err)
	}
	output, err := marshalSymbols(red.Output)
	if err != nil {
		return "", false, fmt.Errorf("write reduction: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", false, fmt.Errorf("write reduction: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO reductions
		(rule_set_hash, input_hash, input, output, removed, run_id, engine_version)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(rule_set_hash, input_hash) DO NOTHING
	`,
		red.RuleSetHash,
		red.InputHash,
		input,
		output,
		red.Removed,
		red.RunID,
		red.EngineVersion,
	)
	if err != nil {
		return "", false, fmt.Errorf("write reduction: insert: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return "", false, fmt.Errorf("write reduction: rows affected: %w", err)
	}

	if rows == 0 {
		err := tx.QueryRowContext(ctx, `
			SELECT run_id FROM reductions
			WHERE rule_set_hash = ? AND input_hash = ?
		`, red.RuleSetHash, red.InputHash).Scan(&runID)
		if err != nil {
			return "", false, fmt.Errorf("write reduction: select existing: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return "", false, fmt.Errorf("write reduction: commit: %w", err)
		}
		return runID, false, nil
	}

	for _, f := range firings {
		if err := writeFiring(ctx, tx, red.RunID, f); err != nil {
			return "", false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", false, fmt.Errorf("write reduction: commit: %w", err)
	}
	return red.RunID, true, nil
}

func writeFiring(ctx context.Context, tx *sql.Tx, runID string, f ir.Firing) error {
	matched, err := marshalSymbols(f.Window)
	if err != nil {
		return fmt.Errorf("write firing %d: %w", f.Seq, err)
	}
	replacement, err := marshalSymbols(f.Replacement)
	if err != nil {
		return fmt.Errorf("write firing %d: %w", f.Seq, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO firings (run_id, seq, rule_id, matched, replacement)
		VALUES (?, ?, ?, ?, ?)
	`, runID, f.Seq, f.RuleID, matched, replacement)
	if err != nil {
		return fmt.Errorf("write firing %d: %w", f.Seq, err)
	}
	return nil
}

// IsNotFound reports whether err means the requested record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
