package models

// PlanID identifies a weekly training plan by session frequency.
type PlanID string

// Available plans.
const (
	Plan1x PlanID = "1x"
	Plan2x PlanID = "2x"
	Plan3x PlanID = "3x"
)

// Plan describes the immutable catalog entry for a training plan.
// BasePrice is in BRL with two-decimal precision.
type Plan struct {
	ID             PlanID  `json:"id"`
	WeeklySessions int     `json:"sessoes_semanais"`
	BasePrice      float64 `json:"valor_base"`
}

// Valid reports whether the plan id is one of the defined values.
func (p PlanID) Valid() bool {
	switch p {
	case Plan1x, Plan2x, Plan3x:
		return true
	}
	return false
}

// WeekDay is a training-center operating day as served by the upstream
// turmas API. The id is opaque to this tier.
type WeekDay struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
}
