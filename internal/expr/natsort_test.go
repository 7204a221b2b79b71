package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareNatural(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"Cond2", "Cond10", -1},
		{"Cond10", "Cond2", 1},
		{"Cond2", "Cond2", 0},
		{"S1", "S2", -1},
		{"S9", "S10", -1},
		{"a", "b", -1},
		{"abc", "abc10", -1},
		{"x2y3", "x2y10", -1},
		{"S01", "S1", -1},
		{"", "a", -1},
		{"", "", 0},
		{"10", "9", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, compareNatural(tt.a, tt.b), "compareNatural(%q, %q)", tt.a, tt.b)
	}
}

func TestConditionOf(t *testing.T) {
	assert.Equal(t, "WT", ConditionOf("WT_1"))
	assert.Equal(t, "Cond", ConditionOf("Cond_rep_2"))
	assert.Equal(t, "NoUnderscore", ConditionOf("NoUnderscore"))
	assert.Equal(t, "", ConditionOf("_leading"))
}

func TestConditions_NumericAwareOrder(t *testing.T) {
	conds := Conditions([]string{"S2_1", "S10_1", "S1_1"})
	assert.Equal(t, []string{"S1", "S2", "S10"}, conds)
}

func TestConditions_Distinct(t *testing.T) {
	conds := Conditions([]string{"WT_1", "WT_2", "Mut_1", "Mut_2"})
	assert.Equal(t, []string{"Mut", "WT"}, conds)
}
