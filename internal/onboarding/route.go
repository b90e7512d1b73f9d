package onboarding

// RouteID names the screen the host UI should show.
type RouteID string

const (
	RouteWelcome    RouteID = "welcome"
	RouteGoals      RouteID = "goals"
	RouteAssessment RouteID = "assessment"
	RouteTraits     RouteID = "traits"
	RoutePreview    RouteID = "preview"
	RouteConnect    RouteID = "connect"
	RouteDashboard  RouteID = "dashboard"
)

var stepRoutes = map[int]RouteID{
	1: RouteWelcome,
	2: RouteGoals,
	3: RouteAssessment,
	4: RouteTraits,
	5: RoutePreview,
	6: RouteConnect,
}

// DestinationForStep maps a step to its route. Anything outside the flow goes to the dashboard.
func DestinationForStep(step int) RouteID {
	if r, ok := stepRoutes[step]; ok {
		return r
	}
	return RouteDashboard
}
