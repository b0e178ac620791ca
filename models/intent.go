package models

// Intent is a fire-and-forget navigation signal for the presentation layer.
type Intent string

const (
	IntentNone        Intent = ""
	IntentDashboard   Intent = "dashboard"
	IntentSpaceDetail Intent = "space_detail"
	IntentHome        Intent = "home"
)
