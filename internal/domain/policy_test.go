package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRateInheritance(t *testing.T) {
	mealRule := func(meal string) Rule {
		return Rule{ID: "rule_1", Kind: RuleMealInheritance, Payload: map[string]any{"default_meal": meal}}
	}

	tests := []struct {
		name     string
		rate     RatePlan
		rules    []Rule
		wantMeal string
	}{
		{
			name:     "fills empty meal from payload",
			rate:     RatePlan{ID: "rate_1"},
			rules:    []Rule{mealRule("BB")},
			wantMeal: "BB",
		},
		{
			name:     "missing payload falls back to room only",
			rate:     RatePlan{ID: "rate_1"},
			rules:    []Rule{{ID: "rule_1", Kind: RuleMealInheritance}},
			wantMeal: "RO",
		},
		{
			name:     "existing meal wins",
			rate:     RatePlan{ID: "rate_1", Meal: "HB"},
			rules:    []Rule{mealRule("BB")},
			wantMeal: "HB",
		},
		{
			name:     "first applicable rule wins",
			rate:     RatePlan{ID: "rate_1"},
			rules:    []Rule{mealRule("BB"), mealRule("AI")},
			wantMeal: "BB",
		},
		{
			name:     "unknown rule kinds skipped",
			rate:     RatePlan{ID: "rate_1"},
			rules:    []Rule{{ID: "rule_1", Kind: "weekend_markup"}, mealRule("HB")},
			wantMeal: "HB",
		},
		{
			name:     "no rules leaves rate untouched",
			rate:     RatePlan{ID: "rate_1", Meal: "RO"},
			wantMeal: "RO",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyRateInheritance(tt.rate, tt.rules)
			assert.Equal(t, tt.wantMeal, got.Meal)
		})
	}
}

func TestBuildPolicyTree(t *testing.T) {
	t.Run("window expands one level per day", func(t *testing.T) {
		window := 3
		rate := RatePlan{ID: "rate_1", Refundable: true, Meal: "BB", CancelBeforeDays: &window}

		tree := BuildPolicyTree(rate)
		require.Len(t, tree, 1)

		node := tree[0]
		for level := 0; level <= window; level++ {
			assert.Equal(t, level, node.Level)
			assert.True(t, node.Refundable)
			assert.Equal(t, "BB", node.Meal)
			require.NotNil(t, node.CancelBeforeDays)
			assert.Equal(t, window-level, *node.CancelBeforeDays)

			if level == window {
				assert.Empty(t, node.Children)
				break
			}
			require.Len(t, node.Children, 1)
			node = node.Children[0]
		}
	})

	t.Run("non-refundable rate is a single leaf", func(t *testing.T) {
		tree := BuildPolicyTree(RatePlan{ID: "rate_2", Refundable: false})
		require.Len(t, tree, 1)
		assert.Zero(t, tree[0].Level)
		assert.Nil(t, tree[0].CancelBeforeDays)
		assert.Empty(t, tree[0].Children)
	})

	t.Run("zero window is a single leaf", func(t *testing.T) {
		zero := 0
		tree := BuildPolicyTree(RatePlan{ID: "rate_3", Refundable: true, CancelBeforeDays: &zero})
		require.Len(t, tree, 1)
		assert.Empty(t, tree[0].Children)
	})

	t.Run("deep window built without recursion", func(t *testing.T) {
		window := 100000
		tree := BuildPolicyTree(RatePlan{ID: "rate_4", Refundable: true, CancelBeforeDays: &window})

		depth := 0
		node := tree[0]
		for len(node.Children) > 0 {
			node = node.Children[0]
			depth++
		}
		assert.Equal(t, window, depth)
		require.NotNil(t, node.CancelBeforeDays)
		assert.Zero(t, *node.CancelBeforeDays)
	})
}
