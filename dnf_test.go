package pagewindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

func Test_tConjunct_toExpression(t *testing.T) {
	timeNow := time.Now().UTC()
	timeNowStr, _ := timeNow.MarshalText()

	tests := []struct {
		name     string
		conjunct tConjunct
		wantSQL  string
		wantVars []interface{}
	}{
		{
			name:     "string less than",
			conjunct: tConjunct{Column: "name", Operator: OperatorLT, Value: "abc"},
			wantSQL:  "name < ?",
			wantVars: []interface{}{"abc"},
		},
		{
			name:     "timestamp greater than",
			conjunct: tConjunct{Column: "created_at", Operator: OperatorGT, Value: timeNow},
			wantSQL:  "created_at > ?",
			wantVars: []interface{}{timeNow},
		},
		{
			name:     "timestamp string should convert to timestamp",
			conjunct: tConjunct{Column: "created_at", Operator: OperatorGT, Value: timeNowStr},
			wantSQL:  "created_at > ?",
			wantVars: []interface{}{timeNow},
		},
		{
			name:     "integer less than",
			conjunct: tConjunct{Column: "id", Operator: OperatorLT, Value: 10},
			wantSQL:  "id < ?",
			wantVars: []interface{}{10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := tt.conjunct.toGORMExpression()
			clauseExpr := expr.(clause.Expr)

			if clauseExpr.SQL != tt.wantSQL {
				t.Errorf("unexpected SQL: got %s, want %s", clauseExpr.SQL, tt.wantSQL)
			}

			if len(clauseExpr.Vars) != len(tt.wantVars) {
				t.Errorf("unexpected vars length: got %d, want %d", len(clauseExpr.Vars), len(tt.wantVars))
			}

			for i, wantVar := range tt.wantVars {
				if clauseExpr.Vars[i] != wantVar {
					t.Errorf("unexpected var[%d]: got %v, want %v", i, clauseExpr.Vars[i], wantVar)
				}
			}
		})
	}
}

func Test_tDisjunct_toExpression(t *testing.T) {
	tests := []struct {
		name     string
		disjunct tDisjunct
		wantNil  bool
	}{
		{
			name: "non-empty disjunct",
			disjunct: tDisjunct{
				{Column: "id", Operator: OperatorGT, Value: 5},
				{Column: "created_at", Operator: OperatorGT, Value: "2024-01-02T03:04:05Z"},
			},
			wantNil: false,
		},
		{
			name:     "empty disjunct",
			disjunct: tDisjunct{},
			wantNil:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := tt.disjunct.toGORMExpression()
			if (expr == nil) != tt.wantNil {
				t.Errorf("unexpected expression result: got %v, want nil=%v", expr, tt.wantNil)
			}
		})
	}
}

func Test_tDNF_toExpression(t *testing.T) {
	tests := []struct {
		name    string
		dnf     tDNF
		wantNil bool
	}{
		{
			name: "non-empty DNF",
			dnf: tDNF{
				{
					{Column: "id", Operator: OperatorGT, Value: 5},
					{Column: "created_at", Operator: OperatorGT, Value: "2024-01-02T03:04:05Z"},
				},
				{{Column: "id", Operator: OperatorGT, Value: 10}},
			},
			wantNil: false,
		},
		{
			name:    "empty DNF",
			dnf:     tDNF{},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := tt.dnf.toGORMExpression()
			if (expr == nil) != tt.wantNil {
				t.Errorf("unexpected expression result: got %v, want nil=%v", expr, tt.wantNil)
			}
		})
	}
}

func Test_Filter_toDNF(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   tDNF
	}{
		{
			name:   "empty domain matches everything",
			filter: Domain{},
			want:   nil,
		},
		{
			name: "domain is a single disjunct",
			filter: Where(
				Condition{Column: "active", Operator: OperatorEq, Value: true},
				Condition{Column: "price", Operator: OperatorLT, Value: 10},
			),
			want: tDNF{{
				{Column: "active", Operator: OperatorEq, Value: true},
				{Column: "price", Operator: OperatorLT, Value: 10},
			}},
		},
		{
			name: "any of joins domains",
			filter: AnyOf{
				Where(Condition{Column: "id", Operator: OperatorGT, Value: 5}),
				Where(Condition{Column: "name", Operator: OperatorLike, Value: "a%"}),
			},
			want: tDNF{
				{{Column: "id", Operator: OperatorGT, Value: 5}},
				{{Column: "name", Operator: OperatorLike, Value: "a%"}},
			},
		},
		{
			name: "any of with an empty domain matches everything",
			filter: AnyOf{
				Where(Condition{Column: "id", Operator: OperatorGT, Value: 5}),
				Domain{},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.filter.toDNF())
		})
	}
}

func Test_tConjunct_toExpression_SetOperator(t *testing.T) {
	expr := tConjunct{Column: "id", Operator: OperatorIn, Value: []int{1, 2}}.toGORMExpression()
	clauseExpr, ok := expr.(clause.Expr)
	require.True(t, ok)
	require.Equal(t, "id IN ?", clauseExpr.SQL)
	require.Equal(t, []any{[]int{1, 2}}, clauseExpr.Vars)
}
