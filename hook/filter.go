package hook

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// DefaultFilter matches any change to the database or its journal files
// except pure permission changes.
const DefaultFilter = `Name startsWith DBName && Op != "CHMOD"`

// Event is the environment filter expressions are evaluated against
type Event struct {
	// Path is the full path of the changed file
	Path string
	// Name is the base name of the changed file
	Name string
	// DBName is the base name of the watched library database
	DBName string
	// Op is the fsnotify operation, e.g. WRITE or CREATE|WRITE
	Op string
}

// FilterError indicates a filter expression could not be compiled or evaluated
type FilterError struct {
	Expression string
	Reason     string
	Err        error
}

func (e *FilterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("filter error in '%s': %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("filter error in '%s': %s", e.Expression, e.Reason)
}

func (e *FilterError) Unwrap() error {
	return e.Err
}

// Filter is a compiled event filter
type Filter struct {
	expression string
	program    *vm.Program
}

// CompileFilter compiles expression, falling back to DefaultFilter when empty
func CompileFilter(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		expression = DefaultFilter
	}

	program, err := expr.Compile(expression,
		expr.Env(Event{}),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &FilterError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &Filter{
		expression: expression,
		program:    program,
	}, nil
}

// String returns the source expression
func (f *Filter) String() string {
	return f.expression
}

// Match evaluates the filter against ev
func (f *Filter) Match(ev Event) (bool, error) {
	out, err := expr.Run(f.program, ev)
	if err != nil {
		return false, &FilterError{
			Expression: f.expression,
			Reason:     "failed to evaluate expression",
			Err:        err,
		}
	}

	matched, ok := out.(bool)
	if !ok {
		return false, &FilterError{
			Expression: f.expression,
			Reason:     fmt.Sprintf("expression returned %T, not bool", out),
		}
	}
	return matched, nil
}
