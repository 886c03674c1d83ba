package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/gatesimp/internal/ir"
)

// marshalSymbols converts a symbol list to canonical JSON TEXT for storage.
func marshalSymbols(syms []ir.Symbol) (string, error) {
	if syms == nil {
		syms = []ir.Symbol{}
	}
	data, err := ir.MarshalCanonical(syms)
	if err != nil {
		return "", fmt.Errorf("marshal symbols: %w", err)
	}
	return string(data), nil
}

// unmarshalSymbols parses a stored symbol list. Returns an empty slice,
// never nil.
func unmarshalSymbols(data string) ([]ir.Symbol, error) {
	out := []ir.Symbol{}
	if data == "" || data == "[]" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, fmt.Errorf("unmarshal symbols: %w", err)
	}
	return out, nil
}
