package rpcad

import (
	"strconv"

	"github.com/pkg/errors"
)

var (
	ErrNoOpenProject     = errors.New("no open project")
	ErrUnknownParameter  = errors.New("unknown parameter")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Parameter is a named model dimension as the host reports it: the raw
// expression and the value it currently evaluates to, in internal units.
type Parameter struct {
	Value      float64 `json:"value"`
	Expression string  `json:"expression"`
}

// ParameterValue is an update to a parameter: either a new expression or a
// plain numeric value, never both.
type ParameterValue struct {
	Expression string   `json:"expression,omitempty"`
	Value      *float64 `json:"value,omitempty"`
}

func Expression(expr string) ParameterValue {
	return ParameterValue{Expression: expr}
}

func Value(value float64) ParameterValue {
	return ParameterValue{Value: &value}
}

func (v ParameterValue) IsNumeric() bool {
	return v.Value != nil
}

func (v ParameterValue) String() string {
	if v.Value != nil {
		return strconv.FormatFloat(*v.Value, 'g', -1, 64)
	}
	return v.Expression
}
