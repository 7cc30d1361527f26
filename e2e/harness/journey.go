package harness

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/artpar/filetree/internal/core"
)

// Journey represents a user journey test.
type Journey struct {
	t           *testing.T
	name        string
	seed        core.Tree
	harness     *E2EHarness
	session     *TUISession
	steps       []*Step
	currentStep int
}

// Step represents a single step in a journey.
type Step struct {
	name        string
	actions     []func(*TUISession)
	assertions  []func(*testing.T, *State)
	waitFor     func(*State) bool
	waitTimeout time.Duration
}

// NewJourney creates a new journey test over seed.
func NewJourney(t *testing.T, name string, seed core.Tree) *Journey {
	return &Journey{
		t:       t,
		name:    name,
		seed:    seed,
		harness: New(t, Config{}),
		steps:   make([]*Step, 0),
	}
}

// Step adds a new step to the journey.
func (j *Journey) Step(name string) *StepBuilder {
	step := &Step{
		name:        name,
		actions:     make([]func(*TUISession), 0),
		assertions:  make([]func(*testing.T, *State), 0),
		waitTimeout: 5 * time.Second,
	}
	j.steps = append(j.steps, step)
	return &StepBuilder{journey: j, step: step}
}

// Run executes the journey.
func (j *Journey) Run() {
	j.t.Helper()
	j.t.Run(j.name, func(t *testing.T) {
		j.session = j.harness.TUI().Start(t, j.seed)

		for i, step := range j.steps {
			j.currentStep = i
			t.Logf("Step %d: %s", i+1, step.name)

			for _, action := range step.actions {
				action(j.session)
			}

			if step.waitFor != nil {
				if err := j.waitForCondition(step.waitFor, step.waitTimeout); err != nil {
					t.Fatalf("Step %d (%s): %v", i+1, step.name, err)
				}
			}

			state := j.session.CaptureState()
			for _, assertion := range step.assertions {
				assertion(t, state)
			}
		}
	})
}

func (j *Journey) waitForCondition(condition func(*State) bool, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	pollInterval := 50 * time.Millisecond

	for time.Now().Before(deadline) {
		if condition(j.session.CaptureState()) {
			return nil
		}
		time.Sleep(pollInterval)
	}

	return fmt.Errorf("timeout waiting for condition after %v", timeout)
}

// StepBuilder provides a fluent API for building steps.
type StepBuilder struct {
	journey *Journey
	step    *Step
}

func (b *StepBuilder) action(fn func(*TUISession)) *StepBuilder {
	b.step.actions = append(b.step.actions, fn)
	return b
}

func (b *StepBuilder) expect(fn func(*testing.T, *State)) *StepBuilder {
	b.step.assertions = append(b.step.assertions, fn)
	return b
}

// SendKey adds a key press action.
func (b *StepBuilder) SendKey(key string) *StepBuilder {
	return b.action(func(s *TUISession) { s.SendKey(key) })
}

// SendKeys adds multiple key press actions.
func (b *StepBuilder) SendKeys(keys ...string) *StepBuilder {
	return b.action(func(s *TUISession) { s.SendKeys(keys...) })
}

// Type adds a typing action.
func (b *StepBuilder) Type(text string) *StepBuilder {
	return b.action(func(s *TUISession) { s.Type(text) })
}

// DoubleClick adds a double click on the row showing label.
func (b *StepBuilder) DoubleClick(label string) *StepBuilder {
	return b.action(func(s *TUISession) { s.DoubleClickLabel(label) })
}

// ClickOutside adds a click outside the tree.
func (b *StepBuilder) ClickOutside() *StepBuilder {
	return b.action(func(s *TUISession) { s.ClickOutside() })
}

// Drag adds a mouse drag from one row onto another.
func (b *StepBuilder) Drag(from, to string) *StepBuilder {
	return b.action(func(s *TUISession) { s.Drag(from, to) })
}

// DragInto adds a mouse drag from one row onto another row's icon.
func (b *StepBuilder) DragInto(from, to string) *StepBuilder {
	return b.action(func(s *TUISession) { s.DragInto(from, to) })
}

// ClickDelete adds a click on the delete affordance of a row.
func (b *StepBuilder) ClickDelete(label string) *StepBuilder {
	return b.action(func(s *TUISession) { s.ClickDelete(label) })
}

// Wait adds a pause.
func (b *StepBuilder) Wait(d time.Duration) *StepBuilder {
	return b.action(func(s *TUISession) { s.Wait(d) })
}

// WaitFor adds a condition to wait for before assertions.
func (b *StepBuilder) WaitFor(condition func(*State) bool, timeout time.Duration) *StepBuilder {
	b.step.waitFor = condition
	b.step.waitTimeout = timeout
	return b
}

// ExpectMode asserts the current mode.
func (b *StepBuilder) ExpectMode(mode string) *StepBuilder {
	return b.expect(func(t *testing.T, s *State) {
		t.Helper()
		if s.MainView.Mode != mode {
			t.Errorf("Expected mode %q, got %q", mode, s.MainView.Mode)
		}
	})
}

// ExpectOutline asserts the whole tree. Lines are joined with newlines.
func (b *StepBuilder) ExpectOutline(lines ...string) *StepBuilder {
	want := strings.Join(lines, "\n") + "\n"
	return b.expect(func(t *testing.T, s *State) {
		t.Helper()
		if s.Tree.Outline != want {
			t.Errorf("Expected outline:\n%s\ngot:\n%s", want, s.Tree.Outline)
		}
	})
}

// ExpectNodeCount asserts the number of nodes in the tree.
func (b *StepBuilder) ExpectNodeCount(count int) *StepBuilder {
	return b.expect(func(t *testing.T, s *State) {
		t.Helper()
		if s.Tree.NodeCount != count {
			t.Errorf("Expected %d nodes, got %d", count, s.Tree.NodeCount)
		}
	})
}

// ExpectSelected asserts the label of the row under the cursor.
func (b *StepBuilder) ExpectSelected(label string) *StepBuilder {
	return b.expect(func(t *testing.T, s *State) {
		t.Helper()
		if s.Tree.SelectedLabel != label {
			t.Errorf("Expected selection %q, got %q", label, s.Tree.SelectedLabel)
		}
	})
}

// ExpectEditing asserts the label of the node being edited. An empty label
// asserts nothing is being edited.
func (b *StepBuilder) ExpectEditing(label string) *StepBuilder {
	return b.expect(func(t *testing.T, s *State) {
		t.Helper()
		if s.Tree.EditingLabel != label {
			t.Errorf("Expected editing %q, got %q", label, s.Tree.EditingLabel)
		}
	})
}

// ExpectEditorFocused asserts whether the label editor has focus.
func (b *StepBuilder) ExpectEditorFocused(focused bool) *StepBuilder {
	return b.expect(func(t *testing.T, s *State) {
		t.Helper()
		if s.Tree.EditorFocused != focused {
			t.Errorf("Expected EditorFocused=%v, got %v", focused, s.Tree.EditorFocused)
		}
	})
}

// ExpectNotification asserts the notification contains text.
func (b *StepBuilder) ExpectNotification(text string) *StepBuilder {
	return b.expect(func(t *testing.T, s *State) {
		t.Helper()
		if !strings.Contains(s.MainView.Notification, text) {
			t.Errorf("Expected notification containing %q, got %q", text, s.MainView.Notification)
		}
	})
}

// ExpectState adds a custom state assertion.
func (b *StepBuilder) ExpectState(assertion func(*testing.T, *State)) *StepBuilder {
	return b.expect(assertion)
}

// Step starts a new step (returns to journey to continue chaining).
func (b *StepBuilder) Step(name string) *StepBuilder {
	return b.journey.Step(name)
}

// Run executes the journey (terminal operation).
func (b *StepBuilder) Run() {
	b.journey.Run()
}
