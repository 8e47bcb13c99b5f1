package wizard

// Step describes one wizard step for display purposes plus its completion
// flag. Titles and descriptions are message codes for the client's
// translation layer.
type Step struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"is_completed"`
}

// StepStatus is the derived state of a step relative to the pointer.
type StepStatus string

const (
	StatusCompleted StepStatus = "completed"
	StatusActive    StepStatus = "active"
	StatusAvailable StepStatus = "available"
	StatusLocked    StepStatus = "locked"
)

func newSteps() []Step {
	return []Step{
		{ID: 1, Title: "registration.steps.identity.title", Description: "registration.steps.identity.description"},
		{ID: 2, Title: "registration.steps.demographics.title", Description: "registration.steps.demographics.description"},
		{ID: 3, Title: "registration.steps.emergency.title", Description: "registration.steps.emergency.description"},
		{ID: 4, Title: "registration.steps.notifications.title", Description: "registration.steps.notifications.description"},
		{ID: 5, Title: "registration.steps.confirmation.title", Description: "registration.steps.confirmation.description"},
	}
}

// navigator holds the step pointer and completion flags and enforces the
// reachability policy. Validation side effects live on the Wizard, which
// owns the forms.
type navigator struct {
	steps   []Step
	current int
}

func newNavigator() *navigator {
	return &navigator{steps: newSteps(), current: 1}
}

func (n *navigator) setCompleted(step int, completed bool) {
	if step >= 1 && step <= len(n.steps) {
		n.steps[step-1].Completed = completed
	}
}

func (n *navigator) completed(step int) bool {
	return step >= 1 && step <= len(n.steps) && n.steps[step-1].Completed
}

// canGoTo implements the reachability policy: backwards is always allowed,
// completed steps are always reachable, and the immediate next step opens
// once the current one is completed.
func (n *navigator) canGoTo(target int) bool {
	if target < 1 || target > len(n.steps) {
		return false
	}
	if target <= n.current {
		return true
	}
	if n.completed(target) {
		return true
	}
	return target == n.current+1 && n.completed(n.current)
}

// status derives a step's display state; nothing here is stored.
func (n *navigator) status(step int) StepStatus {
	switch {
	case step < 1 || step > len(n.steps):
		return StatusLocked
	case n.completed(step):
		return StatusCompleted
	case step == n.current:
		return StatusActive
	case step < n.current:
		return StatusAvailable
	case step == n.current+1 && n.completed(n.current):
		return StatusAvailable
	default:
		return StatusLocked
	}
}

func (n *navigator) reset() {
	n.current = 1
	for i := range n.steps {
		n.steps[i].Completed = false
	}
}

func (n *navigator) allCompleted() bool {
	for _, s := range n.steps {
		if !s.Completed {
			return false
		}
	}
	return true
}

func (n *navigator) snapshot() []Step {
	out := make([]Step, len(n.steps))
	copy(out, n.steps)
	return out
}
