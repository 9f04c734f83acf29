package arena

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/motioncore/pkg/math"
)

//go:embed levels/*.yaml
var levelsFS embed.FS

// DefaultLevel is the built-in level used when none is configured.
const DefaultLevel = "courtyard"

// ErrEmptyLevel is returned for a level without any solid geometry.
var ErrEmptyLevel = errors.New("arena: level has no solids")

// Vec3Spec is a YAML [x, y, z] triple.
type Vec3Spec [3]float32

func (v Vec3Spec) Vec3() math.Vec3 { return math.Vec3{X: v[0], Y: v[1], Z: v[2]} }

// SolidSpec is one static box.
type SolidSpec struct {
	Name string   `yaml:"name"`
	Min  Vec3Spec `yaml:"min"`
	Max  Vec3Spec `yaml:"max"`
}

// PropSpec is one dynamic box.
type PropSpec struct {
	Name         string   `yaml:"name"`
	Center       Vec3Spec `yaml:"center"`
	Size         Vec3Spec `yaml:"size"`
	Mass         float32  `yaml:"mass"`
	Destructible bool     `yaml:"destructible"`
}

// LevelSpec describes a level file.
type LevelSpec struct {
	Name   string      `yaml:"name"`
	Spawn  Vec3Spec    `yaml:"spawn"`
	Yaw    float32     `yaml:"yaw"`
	Solids []SolidSpec `yaml:"solids"`
	Props  []PropSpec  `yaml:"props"`
}

// LoadLevel reads a level by file path, or by name from the built-in set.
// A file on disk wins over a built-in level of the same name.
func LoadLevel(nameOrPath string) (*LevelSpec, error) {
	if nameOrPath == "" {
		nameOrPath = DefaultLevel
	}
	data, err := os.ReadFile(nameOrPath)
	if err != nil {
		data, err = levelsFS.ReadFile(builtinPath(nameOrPath))
		if err != nil {
			return nil, fmt.Errorf("arena: load level %s: %w", nameOrPath, err)
		}
	}
	return ParseLevel(data)
}

// ParseLevel decodes and checks a level document.
func ParseLevel(data []byte) (*LevelSpec, error) {
	var spec LevelSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("arena: unmarshal level: %w", err)
	}
	if len(spec.Solids) == 0 {
		return nil, fmt.Errorf("arena: level %q: %w", spec.Name, ErrEmptyLevel)
	}
	return &spec, nil
}

func builtinPath(name string) string {
	name = filepath.Base(name)
	if filepath.Ext(name) == "" {
		name += ".yaml"
	}
	return "levels/" + name
}
