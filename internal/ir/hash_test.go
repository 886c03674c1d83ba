package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceHash_Deterministic(t *testing.T) {
	a := MustSequenceHash(Symbols("H", "T", "T"))
	b := MustSequenceHash(Symbols("H", "T", "T"))
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	assert.NotEqual(t, a, MustSequenceHash(Symbols("T", "H", "T")))
}

func TestSequenceHash_NoConcatenationCollision(t *testing.T) {
	// A flat string encoding would collide here.
	assert.NotEqual(t,
		MustSequenceHash(Symbols("T", "d")),
		MustSequenceHash(Symbols("Td")))
}

func TestRuleSetHash_OrderMatters(t *testing.T) {
	idRule := RuleSpec{ID: "id", Kind: "identity", Result: "I"}
	hRule := RuleSpec{ID: "hh", Kind: "self_inverse", Operands: Symbols("H"), Result: "I"}

	ab, err := RuleSetHash("I", "d", []RuleSpec{idRule, hRule})
	require.NoError(t, err)
	ba, err := RuleSetHash("I", "d", []RuleSpec{hRule, idRule})
	require.NoError(t, err)
	assert.NotEqual(t, ab, ba)

	again, err := RuleSetHash("I", "d", []RuleSpec{idRule, hRule})
	require.NoError(t, err)
	assert.Equal(t, ab, again)
}

func TestRuleSetHash_ConventionsMatter(t *testing.T) {
	specs := []RuleSpec{{ID: "adj", Kind: "adjoint", Result: "I"}}
	d, err := RuleSetHash("I", "d", specs)
	require.NoError(t, err)
	dagger, err := RuleSetHash("I", "†", specs)
	require.NoError(t, err)
	assert.NotEqual(t, d, dagger)
}

func TestDomainSeparation(t *testing.T) {
	data := []byte(`["H"]`)
	assert.NotEqual(t, hashWithDomain(DomainRuleSet, data), hashWithDomain(DomainSequence, data))
}
