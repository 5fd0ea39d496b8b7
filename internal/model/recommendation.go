package model

// Priority is presentation metadata; it does not order the recommendation list.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// RecommendationKind groups recommendations by the rule that produced them.
type RecommendationKind string

const (
	KindSpending RecommendationKind = "SPENDING"
	KindSavings  RecommendationKind = "SAVINGS"
	KindBudget   RecommendationKind = "BUDGET"
	KindGoal     RecommendationKind = "GOAL"
)

// Recommendation is one advisory message.
type Recommendation struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Priority    Priority           `json:"priority"`
	Kind        RecommendationKind `json:"kind"`
}
