package workload

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/sortstep/internal/bench"
	"github.com/roach88/sortstep/internal/engine"
)

//go:embed plan.cue
var schemaSource string

// Error codes for plan loading.
const (
	ErrCodeRead         = "E201" // File could not be read
	ErrCodeSyntax       = "E202" // CUE syntax error
	ErrCodeSchema       = "E203" // Plan does not satisfy #Plan
	ErrCodeInvalidField = "E204" // Field value rejected after schema checks
)

// LoadError reports a plan that could not be loaded.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsLoadError returns true if err is a LoadError with the given code.
func IsLoadError(err error, code string) bool {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code == code
	}
	return false
}

// Plan is a validated benchmark plan.
type Plan struct {
	Name       string
	Sizes      []int
	Runs       int
	Seed       uint64
	Pattern    bench.Pattern
	Algorithms []engine.Algorithm
}

// Config converts the plan into a benchmark configuration.
func (p *Plan) Config() bench.Config {
	return bench.Config{
		Sizes:      append([]int(nil), p.Sizes...),
		Runs:       p.Runs,
		Seed:       p.Seed,
		Pattern:    p.Pattern,
		Algorithms: append([]engine.Algorithm(nil), p.Algorithms...),
	}
}

// Load reads and validates the plan at path.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRead, Message: fmt.Sprintf("reading plan: %v", err)}
	}
	return Parse(path, data)
}

// Parse validates plan source. filename is used only for positions.
func Parse(filename string, src []byte) (*Plan, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("plan.cue"))
	if err := schema.Err(); err != nil {
		// The schema is compiled into the binary; failing here is a build defect.
		panic(fmt.Sprintf("workload: embedded schema: %v", err))
	}
	def := schema.LookupPath(cue.ParsePath("#Plan"))

	file := ctx.CompileBytes(src, cue.Filename(filename))
	if err := file.Err(); err != nil {
		return nil, fromCUE(ErrCodeSyntax, err)
	}

	v := def.Unify(file)
	if err := v.Validate(); err != nil {
		return nil, fromCUE(ErrCodeSchema, err)
	}

	return decode(v, file)
}

// decode extracts the plan from the unified value v. Positions for
// errors raised here come from src, the file as written.
func decode(v, src cue.Value) (*Plan, error) {
	p := &Plan{}

	if nameVal := v.LookupPath(cue.ParsePath("name")); nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return nil, fromCUE(ErrCodeSchema, err)
		}
		p.Name = name
	}

	sizes, err := field(v, "sizes").List()
	if err != nil {
		return nil, fromCUE(ErrCodeSchema, err)
	}
	for sizes.Next() {
		n, err := sizes.Value().Int64()
		if err != nil {
			return nil, fromCUE(ErrCodeSchema, err)
		}
		p.Sizes = append(p.Sizes, int(n))
	}
	if len(p.Sizes) == 0 {
		return nil, &LoadError{
			Code:    ErrCodeInvalidField,
			Message: "sizes: at least one size is required",
			Pos:     src.LookupPath(cue.ParsePath("sizes")).Pos(),
		}
	}

	runs, err := field(v, "runs").Int64()
	if err != nil {
		return nil, fromCUE(ErrCodeSchema, err)
	}
	p.Runs = int(runs)

	seed, err := field(v, "seed").Uint64()
	if err != nil {
		return nil, fromCUE(ErrCodeSchema, err)
	}
	p.Seed = seed

	pattern, err := field(v, "pattern").String()
	if err != nil {
		return nil, fromCUE(ErrCodeSchema, err)
	}
	p.Pattern = bench.Pattern(pattern)

	algs, err := field(v, "algorithms").List()
	if err != nil {
		return nil, fromCUE(ErrCodeSchema, err)
	}
	for i := 0; algs.Next(); i++ {
		item := algs.Value()
		name, err := item.String()
		if err != nil {
			return nil, fromCUE(ErrCodeSchema, err)
		}
		alg, err := engine.Lookup(name)
		if err != nil {
			return nil, &LoadError{
				Code:    ErrCodeInvalidField,
				Message: fmt.Sprintf("algorithms: %v", err),
				Pos:     src.LookupPath(cue.MakePath(cue.Str("algorithms"), cue.Index(i))).Pos(),
			}
		}
		p.Algorithms = append(p.Algorithms, alg)
	}
	if len(p.Algorithms) == 0 {
		p.Algorithms = engine.Algorithms()
	}

	return p, nil
}

// field returns the named field resolved to its default, if it has one.
func field(v cue.Value, name string) cue.Value {
	f, _ := v.LookupPath(cue.ParsePath(name)).Default()
	return f
}

// fromCUE keeps the first CUE error and its position.
func fromCUE(code string, err error) *LoadError {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error()}
	}
	first := errs[0]
	le := &LoadError{Code: code, Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
