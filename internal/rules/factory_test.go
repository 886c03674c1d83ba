package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gatesimp/internal/ir"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKind("commute")
	require.Error(t, err)
	assert.True(t, ir.HasCode(err, ir.ErrCodeUnknownRuleKind))

	assert.Equal(t, "Kind(99)", Kind(99).String())
}

func TestMake_DerivedIDs(t *testing.T) {
	f := Factory{}

	testCases := []struct {
		kind     Kind
		operands []ir.Symbol
		id       string
		arity    int
	}{
		{KindIdentity, nil, "identity", 2},
		{KindAdjoint, nil, "adjoint", 2},
		{KindSelfInverse, ir.Symbols("H"), "self_inverse(H)", 2},
		{KindFixedPattern, ir.Symbols("T", "T", "T", "T"), "fixed_pattern(T T T T)", 4},
	}
	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			r, err := f.Make(tc.kind, tc.operands...)
			require.NoError(t, err)
			assert.Equal(t, tc.id, r.ID())
			assert.Equal(t, tc.kind, r.Kind())
			assert.Equal(t, tc.arity, r.Arity())
			assert.Equal(t, ir.DefaultIdentity, r.Result())
		})
	}
}

func TestMake_Rejects(t *testing.T) {
	f := Factory{}

	testCases := []struct {
		name     string
		kind     Kind
		operands []ir.Symbol
		code     ir.ErrorCode
	}{
		{"identity with operands", KindIdentity, ir.Symbols("H"), ir.ErrCodeInvalidOperands},
		{"adjoint with operands", KindAdjoint, ir.Symbols("T"), ir.ErrCodeInvalidOperands},
		{"self_inverse without symbol", KindSelfInverse, nil, ir.ErrCodeInvalidOperands},
		{"self_inverse with two symbols", KindSelfInverse, ir.Symbols("H", "T"), ir.ErrCodeInvalidOperands},
		{"self_inverse empty symbol", KindSelfInverse, ir.Symbols(""), ir.ErrCodeInvalidOperands},
		{"fixed_pattern of one", KindFixedPattern, ir.Symbols("T"), ir.ErrCodeInvalidArity},
		{"fixed_pattern empty symbol", KindFixedPattern, ir.Symbols("T", ""), ir.ErrCodeInvalidOperands},
		{"unknown kind", Kind(0), nil, ir.ErrCodeUnknownRuleKind},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.Make(tc.kind, tc.operands...)
			require.Error(t, err)
			assert.True(t, ir.HasCode(err, tc.code), "got %v", err)
		})
	}
}

func TestMake_CopiesPattern(t *testing.T) {
	ops := ir.Symbols("T", "T")
	r, err := Factory{}.Make(KindFixedPattern, ops...)
	require.NoError(t, err)
	ops[1] = "H"
	assert.Equal(t, ir.Symbols("T", "T"), r.Pattern())
}

func TestFromSpec(t *testing.T) {
	f := NewFactory("E", "†")

	r, err := f.FromSpec(ir.RuleSpec{ID: "hh", Kind: "self_inverse", Operands: ir.Symbols("H")})
	require.NoError(t, err)
	assert.Equal(t, "hh", r.ID())
	assert.Equal(t, ir.Symbol("E"), r.Result())
	assert.Equal(t, ir.Symbol("H"), r.Target())

	r, err = f.FromSpec(ir.RuleSpec{Kind: "fixed_pattern", Operands: ir.Symbols("S", "S"), Result: "Z"})
	require.NoError(t, err)
	assert.Equal(t, "fixed_pattern(S S)", r.ID())
	assert.Equal(t, ir.Symbol("Z"), r.Result())

	_, err = f.FromSpec(ir.RuleSpec{Kind: "nope"})
	assert.True(t, ir.HasCode(err, ir.ErrCodeUnknownRuleKind))
}

func TestFromSpecs(t *testing.T) {
	f := Factory{}

	rs, err := f.FromSpecs([]ir.RuleSpec{
		{Kind: "fixed_pattern", Operands: ir.Symbols("T", "T", "T", "T", "T", "T", "T", "T")},
		{Kind: "identity"},
		{Kind: "self_inverse", Operands: ir.Symbols("H")},
		{Kind: "adjoint"},
	})
	require.NoError(t, err)
	require.Len(t, rs, 4)
	assert.Equal(t, KindFixedPattern, rs[0].Kind())
	assert.Equal(t, KindAdjoint, rs[3].Kind())

	_, err = f.FromSpecs([]ir.RuleSpec{{Kind: "identity"}, {Kind: "identity"}})
	require.Error(t, err)
	assert.True(t, ir.HasCode(err, ir.ErrCodeDuplicateRule))
	assert.Contains(t, err.Error(), "rule[1]")

	_, err = f.FromSpecs([]ir.RuleSpec{{Kind: "identity"}, {Kind: "self_inverse"}})
	assert.True(t, ir.HasCode(err, ir.ErrCodeInvalidOperands))
}

func TestSpec_RoundTrip(t *testing.T) {
	f := Factory{}
	r, err := f.Make(KindFixedPattern, "T", "T", "T")
	require.NoError(t, err)

	again, err := f.FromSpec(r.Spec())
	require.NoError(t, err)
	assert.Equal(t, r.ID(), again.ID())
	assert.Equal(t, r.Pattern(), again.Pattern())
}
