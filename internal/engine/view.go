// Package engine runs views: it owns the fixed-timestep frame loop, the
// per-frame context shared with the active view, and the backend contract
// terminals implement.
package engine

// View is one interactive screen. Step advances it by elapsed seconds,
// draws the frame into ctx.Surface and reports what the runtime should do
// next. A non-nil error is fatal and ends the run.
type View interface {
	Step(ctx *Context, elapsed float64) (Action, error)
}

// Factory builds a view. Construction loads assets and may fail.
type Factory func(ctx *Context) (View, error)

// ActionKind is the three-way outcome of a step.
type ActionKind int

const (
	ActionContinue ActionKind = iota // present the frame, keep the view
	ActionReplace                    // switch to Action.Next before the next step
	ActionQuit                       // stop the runtime
)

// String returns a human-readable name for the kind.
func (k ActionKind) String() string {
	switch k {
	case ActionContinue:
		return "continue"
	case ActionReplace:
		return "replace"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Action is returned from every step.
type Action struct {
	kind ActionKind
	next View
}

// Continue keeps the current view active.
func Continue() Action { return Action{kind: ActionContinue} }

// Replace hands control to next. The old view is dropped.
func Replace(next View) Action { return Action{kind: ActionReplace, next: next} }

// Quit ends the run.
func Quit() Action { return Action{kind: ActionQuit} }

// Kind returns the outcome.
func (a Action) Kind() ActionKind { return a.kind }

// Next returns the replacement view for ActionReplace, nil otherwise.
func (a Action) Next() View { return a.next }
