package trellis

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action   string          `json:"action"`
	Label    string          `json:"label,omitempty"`
	Node     string          `json:"node,omitempty"`
	Property string          `json:"property,omitempty"`
	Value    json.RawMessage `json:"value,omitempty"`
	X        float64         `json:"x,omitempty"`
	Y        float64         `json:"y,omitempty"`
	FromX    float64         `json:"fromX,omitempty"`
	FromY    float64         `json:"fromY,omitempty"`
	ToX      float64         `json:"toX,omitempty"`
	ToY      float64         `json:"toY,omitempty"`
	Frames   int             `json:"frames,omitempty"`
	Button   string          `json:"button,omitempty"`

	mutation Mutation    // resolved at load time for "mutate"
	button   MouseButton // resolved at load time for "click"
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences property mutations, injected input events and
// screenshots across frames for automated visual testing. Attach to a Scene
// via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	errs      []error
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner. Mutation properties and
// values are validated here so a bad script fails before it runs.
//
// Actions: "mutate" (node, property, value), "click" (x, y, button), "drag"
// (fromX, fromY, toX, toY, frames), "wait" (frames), "invalidate" (node,
// or the whole tree when empty) and "screenshot" (label).
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "mutate":
			if st.Node == "" {
				return nil, fmt.Errorf("parse test script: step %d: mutate needs a node", i)
			}
			m, err := ParseMutation(st.Property, st.Value)
			if err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
			st.mutation = m
		case "click":
			b, err := parseMouseButton(st.Button)
			if err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
			st.button = b
		case "drag", "wait", "invalidate", "screenshot":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// parseMouseButton accepts "left", "right" or "middle"; empty means left.
func parseMouseButton(name string) (MouseButton, error) {
	switch strings.ToLower(name) {
	case "", "left":
		return MouseButtonLeft, nil
	case "right":
		return MouseButtonRight, nil
	case "middle":
		return MouseButtonMiddle, nil
	}
	return MouseButtonLeft, fmt.Errorf("unknown mouse button %q", name)
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Update before processInput each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Errors returns the errors raised by steps that could not be applied,
// such as a mutation naming a missing node or creating an axis conflict.
// Failed steps are skipped; the script keeps running.
func (r *TestRunner) Errors() []error {
	return r.errs
}

// step advances the test runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "mutate":
		n := s.root.FindChild(st.Node)
		if n == nil {
			r.fail(s, fmt.Errorf("step %d: no node named %q", r.cursor-1, st.Node))
			break
		}
		if err := st.mutation.Apply(n); err != nil {
			r.fail(s, fmt.Errorf("step %d: %w", r.cursor-1, err))
		}
	case "invalidate":
		target := s.root
		if st.Node != "" {
			target = s.root.FindChild(st.Node)
		}
		if target == nil {
			r.fail(s, fmt.Errorf("step %d: no node named %q", r.cursor-1, st.Node))
			break
		}
		InvalidateTree(target)
	case "click":
		s.InjectClickButton(st.X, st.Y, st.button)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) fail(s *Scene, err error) {
	r.errs = append(r.errs, err)
	if s.debug {
		_, _ = fmt.Fprintf(os.Stderr, "[trellis] test runner: %v\n", err)
	}
}
