package onboarding

// MaxGoals is the most financial goals a user may pick.
const MaxGoals = 3

// CanAddGoal reports whether another goal fits in the selection.
func CanAddGoal(currentGoals []string) bool {
	return len(currentGoals) < MaxGoals
}

// ToggleGoal applies the goals-screen toggle: a selected goal is removed,
// an unselected one is appended if there is room, otherwise the selection is unchanged.
func ToggleGoal(currentGoals []string, id string) []string {
	for i, g := range currentGoals {
		if g == id {
			out := make([]string, 0, len(currentGoals)-1)
			out = append(out, currentGoals[:i]...)
			return append(out, currentGoals[i+1:]...)
		}
	}
	if !CanAddGoal(currentGoals) {
		return currentGoals
	}
	out := make([]string, 0, len(currentGoals)+1)
	out = append(out, currentGoals...)
	return append(out, id)
}
