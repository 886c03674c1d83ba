package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainRuleSet  = "gatesimp/ruleset/v1"
	DomainSequence = "gatesimp/sequence/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SequenceHash computes the content-addressed ID of a symbol sequence.
func SequenceHash(syms []Symbol) (string, error) {
	canonical, err := MarshalCanonical(syms)
	if err != nil {
		return "", fmt.Errorf("SequenceHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainSequence, canonical), nil
}

// RuleSetHash computes the content-addressed ID of an ordered rule set under
// the given symbol conventions. Rule order is part of the identity because
// it decides which rule wins when several match.
func RuleSetHash(identity Symbol, marker string, specs []RuleSpec) (string, error) {
	rules := make([]any, len(specs))
	for i, spec := range specs {
		ops := make([]any, len(spec.Operands))
		for j, op := range spec.Operands {
			ops[j] = op
		}
		rules[i] = map[string]any{
			"id":       spec.ID,
			"kind":     spec.Kind,
			"operands": ops,
			"result":   spec.Result,
		}
	}
	obj := map[string]any{
		"identity":       identity,
		"adjoint_marker": marker,
		"rules":          rules,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("RuleSetHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainRuleSet, canonical), nil
}

// MustSequenceHash is like SequenceHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustSequenceHash(syms []Symbol) string {
	h, err := SequenceHash(syms)
	if err != nil {
		panic(err)
	}
	return h
}
