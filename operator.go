package pagewindow

import "strings"

// Operator defines a comparison operator of a filter Condition.
type Operator string

const (
	OperatorEq    Operator = "="
	OperatorNe    Operator = "!="
	OperatorGT    Operator = ">"
	OperatorGTE   Operator = ">="
	OperatorLT    Operator = "<"
	OperatorLTE   Operator = "<="
	OperatorIn    Operator = "IN"
	OperatorNotIn Operator = "NOT IN"
	OperatorLike  Operator = "LIKE"
	OperatorILike Operator = "ILIKE"
)

func (o Operator) Valid() bool {
	switch o {
	case OperatorEq, OperatorNe, OperatorGT, OperatorGTE, OperatorLT, OperatorLTE,
		OperatorIn, OperatorNotIn, OperatorLike, OperatorILike:
		return true
	default:
		return false
	}
}

// IsSet reports whether the operator compares a column against a list of values.
func (o Operator) IsSet() bool {
	return o == OperatorIn || o == OperatorNotIn
}

// ParseOperator accepts operators case-insensitively ("in", "not in", "ilike" ...).
func ParseOperator(s string) (Operator, bool) {
	op := Operator(strings.ToUpper(strings.Join(strings.Fields(s), " ")))

	return op, op.Valid()
}
