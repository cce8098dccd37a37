package score

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// ParseCUE parses a session written in CUE. The top-level struct has the
// same fields as the YAML form; CUE constraints and references are resolved
// before the tree is read, so the result must be concrete.
func ParseCUE(src []byte) (*Session, error) {
	return parseCUE(src, "session.cue")
}

// LoadCUE reads and parses a CUE session file.
func LoadCUE(path string) (*Session, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	s, err := parseCUE(src, path)
	if err != nil {
		return nil, err
	}
	return named(s, path), nil
}

func parseCUE(src []byte, filename string) (*Session, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}
	tree, err := cueTree(v, "session")
	if err != nil {
		return nil, err
	}
	return ParseSession(tree)
}

// cueTree converts a concrete CUE value into the generic tree Parse reads.
func cueTree(v cue.Value, path string) (any, error) {
	switch v.Kind() {
	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		m := make(map[string]any)
		for iter.Next() {
			label := iter.Selector().Unquoted()
			child, err := cueTree(iter.Value(), path+"."+label)
			if err != nil {
				return nil, err
			}
			m[label] = child
		}
		return m, nil

	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		var list []any
		for i := 0; iter.Next(); i++ {
			child, err := cueTree(iter.Value(), index(path, i))
			if err != nil {
				return nil, err
			}
			list = append(list, child)
		}
		if list == nil {
			list = []any{}
		}
		return list, nil

	case cue.StringKind:
		return v.String()
	case cue.IntKind:
		return v.Int64()
	case cue.FloatKind:
		return v.Float64()
	case cue.BoolKind:
		return v.Bool()
	case cue.NullKind:
		return nil, nil
	}
	return nil, errorf(path, "unsupported CUE value of kind %s", v.Kind())
}

// formatCUEError keeps the position of the first CUE error.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	positions := cueerrors.Positions(first)
	if len(positions) > 0 && positions[0].IsValid() {
		pos := positions[0]
		return &ParseError{
			Path:    fmt.Sprintf("%s:%d:%d", pos.Filename(), pos.Line(), pos.Column()),
			Message: first.Error(),
		}
	}
	return &ParseError{Message: first.Error()}
}
