package query

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// Expression is a compiled boolean filter over the fields of a schema,
// e.g. `stock < 10 && category == "Bebidas"`.
type Expression[T any] struct {
	source string
	schema *Schema[T]
	prg    cel.Program
}

// Compile checks src against the schema fields and requires a bool result.
func Compile[T any](schema *Schema[T], src string) (*Expression[T], error) {
	env, err := schema.celEnv()
	if err != nil {
		return nil, fmt.Errorf("expression environment: %w", err)
	}

	ast, iss := env.Compile(src)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("invalid expression: %w", iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("expression must evaluate to bool, got %s", ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("expression program: %w", err)
	}
	return &Expression[T]{source: src, schema: schema, prg: prg}, nil
}

// String returns the expression source.
func (x *Expression[T]) String() string { return x.source }

// Match evaluates the expression for rec. Evaluation errors count as no match.
func (x *Expression[T]) Match(rec T) bool {
	vars := make(map[string]any, len(x.schema.order))
	for _, name := range x.schema.order {
		vars[name] = x.schema.fields[name].native(rec)
	}
	out, _, err := x.prg.Eval(vars)
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
