package services

// PlanningDefaults carries every implicit fallback the planning engine uses,
// resolved once per request from user settings (or these fallbacks) instead
// of scattered across call sites.
type PlanningDefaults struct {
	// ItemDurationMinutes fills in for items generated into a plan without a
	// usable duration estimate. Aggregation does NOT use it: a missing
	// duration is zero work for analytics but a real task for generation.
	ItemDurationMinutes int
	SleepStartHour      int
	SleepEndHour        int
	SessionLengthMin    int
	BreakMinutes        int
	OvercommitThreshold int
}

// DefaultPlanning returns the stock defaults.
func DefaultPlanning() PlanningDefaults {
	return PlanningDefaults{
		ItemDurationMinutes: 60,
		SleepStartHour:      23,
		SleepEndHour:        7,
		SessionLengthMin:    60,
		BreakMinutes:        10,
		OvercommitThreshold: 480,
	}
}
