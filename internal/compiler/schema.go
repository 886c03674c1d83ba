package compiler

import (
	_ "embed"

	"cuelang.org/go/cue"
)

//go:embed schema.cue
var schemaCUE string

// ApplySchema unifies v with the #Problem definition and checks the result
// is concrete. Defaults (identity "I", adjoint_marker "d") are filled in.
// v must come from ctx.
func ApplySchema(ctx *cue.Context, v cue.Value) (cue.Value, error) {
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return cue.Value{}, formatCUEError(err)
	}

	def := schema.LookupPath(cue.ParsePath("#Problem"))
	unified := def.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return cue.Value{}, formatCUEError(err)
	}
	return unified, nil
}
