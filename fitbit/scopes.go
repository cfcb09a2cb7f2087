package fitbit

// Scope represents an OAuth2 scope granting access to a group of Fitbit endpoints.
type Scope string

const (
	// ScopeActivity covers activity, exercise and intraday activity data.
	ScopeActivity Scope = "activity"

	// ScopeHeartRate covers continuous heart rate data.
	ScopeHeartRate Scope = "heartrate"

	// ScopeLocation covers GPS data attached to activities.
	ScopeLocation Scope = "location"

	// ScopeNutrition covers food and water logs.
	ScopeNutrition Scope = "nutrition"

	// ScopeProfile covers the user's profile and badges.
	ScopeProfile Scope = "profile"

	// ScopeSettings covers devices and alarms.
	ScopeSettings Scope = "settings"

	// ScopeSleep covers sleep logs and goals.
	ScopeSleep Scope = "sleep"

	// ScopeSocial covers friends and leaderboards.
	ScopeSocial Scope = "social"

	// ScopeWeight covers body weight and fat data.
	ScopeWeight Scope = "weight"
)

// DefaultScopes returns the scope set requested when none is configured.
// The order is significant: it is the order used in the authorization URL.
func DefaultScopes() []Scope {
	return []Scope{
		ScopeActivity,
		ScopeNutrition,
		ScopeHeartRate,
		ScopeLocation,
		ScopeNutrition,
		ScopeProfile,
		ScopeSettings,
		ScopeSleep,
		ScopeSocial,
		ScopeWeight,
	}
}
