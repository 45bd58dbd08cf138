package pagewindow

import (
	"fmt"
	"reflect"

	"github.com/samber/lo"
)

// DefaultIDColumn is the identifier column the membership fast path recognizes.
const DefaultIDColumn = "id"

// Filter is a structured predicate describing which records belong to a result set.
// It is interpreted by a Repository; the engine only inspects it to recognize the
// membership-list special case (see IDsIn).
type Filter interface {
	toDNF() tDNF
}

// Condition is a single Operator(Column, Value) predicate. For OperatorIn and
// OperatorNotIn the Value must be a slice.
type Condition struct {
	Column   string
	Operator Operator
	Value    any
}

// Domain is a list of conditions joined by AND. An empty Domain matches everything.
type Domain []Condition

// AnyOf joins domains with OR.
type AnyOf []Domain

// Where builds a Domain from conditions.
func Where(conditions ...Condition) Domain {
	return conditions
}

// IDsIn builds the membership-list filter "id IN (ids...)". The order of ids is
// authoritative: a FilterPaginator over this filter (with no explicit ordering) counts and
// slices the list itself and never asks the Repository to search.
func IDsIn[ID comparable](ids ...ID) Domain {
	return Domain{{Column: DefaultIDColumn, Operator: OperatorIn, Value: ids}}
}

func (c Condition) validate() error {
	if !c.Operator.Valid() {
		return fmt.Errorf("%w: unknown operator '%s'", ErrInvalidFilter, c.Operator)
	}

	if !isSafeColumnName(c.Column) {
		return fmt.Errorf("%w: column name contains forbidden symbols '%s'", ErrInvalidFilter, c.Column)
	}

	if c.Operator.IsSet() {
		v := reflect.ValueOf(c.Value)
		if !v.IsValid() || (v.Kind() != reflect.Slice && v.Kind() != reflect.Array) {
			return fmt.Errorf("%w: operator '%s' expects a list value for column '%s'", ErrInvalidFilter, c.Operator, c.Column)
		}
	}

	return nil
}

func (d Domain) validate() error {
	for _, c := range d {
		if err := c.validate(); err != nil {
			return err
		}
	}

	return nil
}

func (d Domain) toDNF() tDNF {
	if len(d) == 0 {
		return nil
	}

	return tDNF{lo.Map(d, func(c Condition, _ int) tConjunct {
		return tConjunct(c)
	})}
}

func (a AnyOf) toDNF() tDNF {
	ret := make(tDNF, 0, len(a))
	for _, d := range a {
		// An empty domain matches everything, so does the whole disjunction.
		if len(d) == 0 {
			return nil
		}
		ret = append(ret, d.toDNF()...)
	}

	return ret
}

// validateFilter checks every condition of a filter before it reaches a backend.
func validateFilter(f Filter) error {
	switch ft := f.(type) {
	case nil:
		return nil
	case Domain:
		return ft.validate()
	case AnyOf:
		for _, d := range ft {
			if err := d.validate(); err != nil {
				return err
			}
		}

		return nil
	}

	return nil
}

// membershipIDs recognizes the membership-list special case: a Domain made of exactly
// one "<idColumn> IN []ID" condition. The literal list is returned as-is.
func membershipIDs[ID comparable](f Filter, idColumn string) ([]ID, bool) {
	d, ok := f.(Domain)
	if !ok || len(d) != 1 {
		return nil, false
	}

	cond := d[0]
	if cond.Column != idColumn || cond.Operator != OperatorIn {
		return nil, false
	}

	ids, ok := cond.Value.([]ID)

	return ids, ok
}
