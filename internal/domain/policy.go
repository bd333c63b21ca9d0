package domain

// RuleMealInheritance fills an empty meal plan from the rule payload's
// default_meal, falling back to room-only.
const RuleMealInheritance = "meal_inheritance"

// ApplyRateInheritance folds the rule chain over a rate plan, returning
// the adjusted copy. Rules apply in order; a meal set by an earlier rule
// is never overwritten by a later one.
func ApplyRateInheritance(rate RatePlan, rules []Rule) RatePlan {
	for _, rule := range rules {
		if rule.Kind != RuleMealInheritance || rate.Meal != "" {
			continue
		}
		meal := "RO"
		if v, ok := rule.Payload["default_meal"].(string); ok && v != "" {
			meal = v
		}
		rate.Meal = meal
	}
	return rate
}

// PolicyNode is one level of a cancellation policy tree. Each level
// represents the policy one day closer to checkin than its parent.
type PolicyNode struct {
	Level            int          `json:"level"`
	Refundable       bool         `json:"refundable"`
	CancelBeforeDays *int         `json:"cancel_before_days"`
	Meal             string       `json:"meal"`
	Children         []PolicyNode `json:"children"`
}

// BuildPolicyTree expands a rate plan's cancellation window into a chain
// of per-day policy nodes: level 0 carries the full window and each child
// one day less, down to zero. Built bottom-up with a loop so a long
// window cannot exhaust the stack.
func BuildPolicyTree(rate RatePlan) []PolicyNode {
	if rate.CancelBeforeDays == nil || *rate.CancelBeforeDays <= 0 {
		return []PolicyNode{{
			Refundable:       rate.Refundable,
			CancelBeforeDays: rate.CancelBeforeDays,
			Meal:             rate.Meal,
			Children:         []PolicyNode{},
		}}
	}

	window := *rate.CancelBeforeDays
	zero := 0
	node := PolicyNode{
		Level:            window,
		Refundable:       rate.Refundable,
		CancelBeforeDays: &zero,
		Meal:             rate.Meal,
		Children:         []PolicyNode{},
	}
	for level := window - 1; level >= 0; level-- {
		days := window - level
		node = PolicyNode{
			Level:            level,
			Refundable:       rate.Refundable,
			CancelBeforeDays: &days,
			Meal:             rate.Meal,
			Children:         []PolicyNode{node},
		}
	}
	return []PolicyNode{node}
}
