package score

import (
	"fmt"
	"math"
	"math/big"
	"slices"
	"strconv"

	"github.com/roach88/mantra/internal/content"
	"github.com/roach88/mantra/internal/pattern"
)

// ParseError reports a malformed description. Path locates the offending
// value, for example "pattern.cat[1].fast.factor", or a file position for
// CUE syntax errors.
type ParseError struct {
	Path    string
	Message string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func errorf(path, format string, args ...any) error {
	return &ParseError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// Parse converts a decoded YAML, JSON or CUE tree into a node tree.
func Parse(tree any) (Node, error) {
	return parseNode(tree, "pattern")
}

func parseNode(v any, path string) (Node, error) {
	if s, ok := v.(string); ok {
		return Pure{Value: s}, nil
	}
	m, ok := asMap(v)
	if !ok {
		return nil, errorf(path, "expected an operator mapping or a string, got %s", describe(v))
	}
	if len(m) != 1 {
		return nil, errorf(path, "an operator mapping must have exactly one key, got %d (%v)", len(m), sortedKeys(m))
	}

	var op string
	var arg any
	for k, val := range m {
		op, arg = k, val
	}
	at := path + "." + op

	switch op {
	case "pure":
		s, err := scalarString(arg, at)
		if err != nil {
			return nil, err
		}
		return Pure{Value: s}, nil

	case "seq":
		list, err := asList(arg, at)
		if err != nil {
			return nil, err
		}
		values := make([]string, len(list))
		for i, item := range list {
			if values[i], err = scalarString(item, index(at, i)); err != nil {
				return nil, err
			}
		}
		return Seq{Values: values}, nil

	case "silence":
		return Silence{}, nil

	case "theme":
		return parseTheme(arg, at)

	case "fast", "slow":
		f, err := fieldsOf(arg, at, "factor", "of")
		if err != nil {
			return nil, err
		}
		factor, err := f.number("factor", true)
		if err != nil {
			return nil, err
		}
		of, err := f.node("of")
		if err != nil {
			return nil, err
		}
		if op == "fast" {
			return Fast{Factor: factor, Of: of}, nil
		}
		return Slow{Factor: factor, Of: of}, nil

	case "early", "late":
		f, err := fieldsOf(arg, at, "amount", "of")
		if err != nil {
			return nil, err
		}
		amount, err := f.number("amount", true)
		if err != nil {
			return nil, err
		}
		of, err := f.node("of")
		if err != nil {
			return nil, err
		}
		if op == "early" {
			return Early{Amount: amount, Of: of}, nil
		}
		return Late{Amount: amount, Of: of}, nil

	case "stack", "cat":
		children, err := parseNodeList(arg, at)
		if err != nil {
			return nil, err
		}
		if op == "stack" {
			return Stack{Of: children}, nil
		}
		return Cat{Of: children}, nil

	case "weave", "alternate":
		key := "count"
		if op == "alternate" {
			key = "cycles"
		}
		f, err := fieldsOf(arg, at, key, "of")
		if err != nil {
			return nil, err
		}
		n, err := f.integer(key, true)
		if err != nil {
			return nil, err
		}
		children, err := f.nodeList("of")
		if err != nil {
			return nil, err
		}
		if op == "weave" {
			return Weave{Count: n, Of: children}, nil
		}
		return Alternate{Cycles: n, Of: children}, nil

	case "degrade":
		f, err := fieldsOf(arg, at, "prob", "seed", "of")
		if err != nil {
			return nil, err
		}
		prob, err := f.number("prob", true)
		if err != nil {
			return nil, err
		}
		seed, err := f.seed("seed")
		if err != nil {
			return nil, err
		}
		of, err := f.node("of")
		if err != nil {
			return nil, err
		}
		return Degrade{Prob: prob, Seed: seed, Of: of}, nil

	case "every":
		f, err := fieldsOf(arg, at, "n", "apply", "of")
		if err != nil {
			return nil, err
		}
		n, err := f.integer("n", true)
		if err != nil {
			return nil, err
		}
		apply, err := parseTransform(f.m["apply"], at+".apply")
		if err != nil {
			return nil, err
		}
		of, err := f.node("of")
		if err != nil {
			return nil, err
		}
		return Every{N: n, Apply: apply, Of: of}, nil

	case "filter":
		f, err := fieldsOf(arg, at, "subject", "dominant", "of")
		if err != nil {
			return nil, err
		}
		tags, err := f.tags()
		if err != nil {
			return nil, err
		}
		of, err := f.node("of")
		if err != nil {
			return nil, err
		}
		return Filter{Tags: tags, Of: of}, nil
	}

	return nil, errorf(path, "unknown operator %q", op)
}

func parseTheme(arg any, path string) (Node, error) {
	if name, ok := arg.(string); ok {
		if name == "" {
			return nil, errorf(path, "theme name must not be empty")
		}
		return Theme{Name: name}, nil
	}
	f, err := fieldsOf(arg, path, "name", "order", "seed", "min_difficulty", "max_difficulty", "subject", "dominant")
	if err != nil {
		return nil, err
	}
	name, err := f.str("name", true)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errorf(path+".name", "theme name must not be empty")
	}
	t := Theme{Name: name}

	order, err := f.str("order", false)
	if err != nil {
		return nil, err
	}
	if t.Order, err = pattern.ParseOrder(order); err != nil {
		return nil, errorf(path+".order", "%v", err)
	}
	if t.Seed, err = f.seed("seed"); err != nil {
		return nil, err
	}
	if t.MinDifficulty, err = f.difficulty("min_difficulty"); err != nil {
		return nil, err
	}
	if t.MaxDifficulty, err = f.difficulty("max_difficulty"); err != nil {
		return nil, err
	}
	if t.Tags, err = f.tags(); err != nil {
		return nil, err
	}
	return t, nil
}

func parseTransform(v any, path string) (Transform, error) {
	if v == nil {
		return Transform{}, errorf(path, "is required")
	}
	m, ok := asMap(v)
	if !ok || len(m) != 1 {
		return Transform{}, errorf(path, "expected a single {operator: number} mapping")
	}
	for op, arg := range m {
		switch op {
		case OpFast, OpSlow, OpEarly, OpLate, OpDegrade:
		default:
			return Transform{}, errorf(path, "unknown transform %q (want fast, slow, early, late or degrade)", op)
		}
		x, ok := toFloat(arg)
		if !ok {
			return Transform{}, errorf(path+"."+op, "must be a number, got %s", describe(arg))
		}
		return Transform{Op: op, Value: x}, nil
	}
	return Transform{}, nil
}

func parseNodeList(v any, path string) ([]Node, error) {
	list, err := asList(v, path)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, len(list))
	for i, item := range list {
		if nodes[i], err = parseNode(item, index(path, i)); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// fields is an operator's argument mapping with its path.
type fields struct {
	m    map[string]any
	path string
}

func fieldsOf(v any, path string, allowed ...string) (fields, error) {
	m, ok := asMap(v)
	if !ok {
		return fields{}, errorf(path, "expected a mapping, got %s", describe(v))
	}
	for _, k := range sortedKeys(m) {
		if !slices.Contains(allowed, k) {
			return fields{}, errorf(path, "unknown field %q", k)
		}
	}
	return fields{m: m, path: path}, nil
}

func (f fields) at(key string) string {
	if f.path == "" {
		return key
	}
	return f.path + "." + key
}

func (f fields) number(key string, required bool) (float64, error) {
	v, ok := f.m[key]
	if !ok {
		if required {
			return 0, errorf(f.at(key), "is required")
		}
		return 0, nil
	}
	x, ok := toFloat(v)
	if !ok {
		return 0, errorf(f.at(key), "must be a number, got %s", describe(v))
	}
	return x, nil
}

func (f fields) integer(key string, required bool) (int, error) {
	x, err := f.number(key, required)
	if err != nil {
		return 0, err
	}
	if x != math.Trunc(x) || math.Abs(x) > math.MaxInt32 {
		return 0, errorf(f.at(key), "must be an integer, got %v", x)
	}
	return int(x), nil
}

func (f fields) seed(key string) (*int64, error) {
	v, ok := f.m[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := toInt64(v)
	if !ok {
		return nil, errorf(f.at(key), "must be an integer, got %s", describe(v))
	}
	return &s, nil
}

func (f fields) str(key string, required bool) (string, error) {
	v, ok := f.m[key]
	if !ok || v == nil {
		if required {
			return "", errorf(f.at(key), "is required")
		}
		return "", nil
	}
	return scalarString(v, f.at(key))
}

func (f fields) difficulty(key string) (content.Difficulty, error) {
	s, err := f.str(key, false)
	if err != nil || s == "" {
		return content.Unset, err
	}
	d, ok := content.LookupDifficulty(s)
	if !ok {
		return content.Unset, errorf(f.at(key), "unknown difficulty %q", s)
	}
	return d, nil
}

func (f fields) tags() (content.Tags, error) {
	subject, err := f.str("subject", false)
	if err != nil {
		return content.Tags{}, err
	}
	dominant, err := f.str("dominant", false)
	if err != nil {
		return content.Tags{}, err
	}
	return content.Tags{Subject: subject, Dominant: dominant}, nil
}

func (f fields) node(key string) (Node, error) {
	v, ok := f.m[key]
	if !ok {
		return nil, errorf(f.at(key), "is required")
	}
	return parseNode(v, f.at(key))
}

func (f fields) nodeList(key string) ([]Node, error) {
	v, ok := f.m[key]
	if !ok {
		return nil, errorf(f.at(key), "is required")
	}
	return parseNodeList(v, f.at(key))
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

func asList(v any, path string) ([]any, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, errorf(path, "expected a list, got %s", describe(v))
	}
	return list, nil
}

func scalarString(v any, path string) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	}
	if i, ok := toInt64(v); ok {
		return strconv.FormatInt(i, 10), nil
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	}
	return "", errorf(path, "expected a scalar, got %s", describe(v))
}

// toFloat accepts the numeric types produced by yaml.v3, encoding/json and
// the CUE walker.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, !math.IsNaN(x) && !math.IsInf(x, 0)
	case *big.Int:
		f, _ := new(big.Float).SetInt(x).Float64()
		return f, true
	case *big.Float:
		f, _ := x.Float64()
		return f, true
	}
	return 0, false
}

func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint64:
		return int64(x), true // large seeds wrap
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return int64(x), true
		}
	case *big.Int:
		if x.IsInt64() {
			return x.Int64(), true
		}
	}
	return 0, false
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "a list"
	case map[string]any, map[any]any:
		return "a mapping"
	}
	return fmt.Sprintf("%T", v)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
