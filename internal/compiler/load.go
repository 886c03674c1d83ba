package compiler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/roach88/gatesimp/internal/ir"
)

// ErrUnsupportedFile is returned by LoadProblem for paths that are neither
// a directory nor a .cue/.yaml/.yml file.
var ErrUnsupportedFile = errors.New("unsupported problem file")

// LoadProblem reads a problem from path and compiles it to an ir-level
// problem without validating it.
//
// path may be a .cue file, a directory of .cue files forming one package,
// or a .yaml/.yml file.
func LoadProblem(path string) (*ir.Problem, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return loadCUEDir(path)
	}

	switch filepath.Ext(path) {
	case ".cue":
		return loadCUEFile(path)
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("%w %s: want .cue, .yaml or a directory", ErrUnsupportedFile, path)
	}
}

// LoadAndBuild loads the problem at path and builds it.
func LoadAndBuild(path string) (*Compiled, error) {
	p, err := LoadProblem(path)
	if err != nil {
		return nil, err
	}
	return Build(p)
}

func loadCUEFile(path string) (*ir.Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return compileValue(ctx, v)
}

func loadCUEDir(dir string) (*ir.Problem, error) {
	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, fmt.Errorf("no CUE instances in %s", dir)
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, formatCUEError(inst.Err)
	}
	v := ctx.BuildInstance(inst)
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return compileValue(ctx, v)
}

func compileValue(ctx *cue.Context, v cue.Value) (*ir.Problem, error) {
	unified, err := ApplySchema(ctx, v)
	if err != nil {
		return nil, err
	}
	return CompileProblem(unified)
}
