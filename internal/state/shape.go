package state

import (
	_ "embed"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed shape.cue
var shapeCUE string

// validateShape checks the top-level shape of a blob.
// It returns an *ImportError for anything Decode must reject.
func validateShape(data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(shapeCUE, cue.Filename("shape.cue"))
	if err := schema.Err(); err != nil {
		// Embedded definition is fixed at build time.
		panic("state: invalid embedded shape: " + err.Error())
	}
	def := schema.LookupPath(cue.ParsePath("#State"))

	expr, err := cuejson.Extract("state.json", data)
	if err != nil {
		return &ImportError{Message: MsgInvalidJSON, Err: err}
	}
	v := ctx.BuildExpr(expr)
	if err := v.Err(); err != nil {
		return &ImportError{Message: MsgInvalidJSON, Err: err}
	}

	if err := def.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return &ImportError{
			Message: MsgInvalidJSON,
			Path:    shapeErrorPath(err),
			Err:     err,
		}
	}
	return nil
}

// shapeErrorPath returns the path of the first validation error.
func shapeErrorPath(err error) string {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return ""
	}
	path := errs[0].Path()
	if len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}
	return strings.Join(path, ".")
}
