// Package sim runs scripted input against an avatar without a window.
package sim

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/motioncore/internal/motion"
)

// ErrNoSteps is returned for a script without steps.
var ErrNoSteps = errors.New("script has no steps")

// Script is a sequence of held-action steps.
type Script struct {
	Name  string `yaml:"name"`
	Level string `yaml:"level"`
	// CameraYaw in degrees turns the movement keys, as the orbit camera would.
	CameraYaw float32 `yaml:"camera_yaw"`
	Steps     []Step  `yaml:"steps"`
}

// Step holds a set of actions for a number of ticks. Press and release
// edges happen at step boundaries.
type Step struct {
	Ticks int             `yaml:"ticks"`
	Hold  []motion.Action `yaml:"hold"`
	Note  string          `yaml:"note"`
}

// TotalTicks is the script length.
func (s *Script) TotalTicks() int {
	n := 0
	for _, st := range s.Steps {
		n += st.Ticks
	}
	return n
}

// Validate checks the script is runnable.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return ErrNoSteps
	}
	for i, st := range s.Steps {
		if st.Ticks < 0 {
			return fmt.Errorf("step %d: negative tick count %d", i, st.Ticks)
		}
	}
	return nil
}

// LoadScript reads a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseScript decodes and validates a YAML script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
