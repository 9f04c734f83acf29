// Package main is the interactive avatar sandbox: a top-down view of an
// arena driven by keyboard and mouse.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/motioncore/internal/anim"
	"github.com/Faultbox/motioncore/internal/arena"
	"github.com/Faultbox/motioncore/internal/avatar"
	"github.com/Faultbox/motioncore/internal/config"
	"github.com/Faultbox/motioncore/internal/engine/audio"
	"github.com/Faultbox/motioncore/internal/engine/camera"
	"github.com/Faultbox/motioncore/internal/engine/debug"
	"github.com/Faultbox/motioncore/internal/engine/input"
	"github.com/Faultbox/motioncore/internal/engine/window"
	"github.com/Faultbox/motioncore/internal/logger"
	"github.com/Faultbox/motioncore/internal/motion"
	"github.com/Faultbox/motioncore/pkg/math"
)

// maxStepsPerFrame bounds catch-up after a stall.
const maxStepsPerFrame = 5

type sandbox struct {
	cfg    *config.Config
	world  *arena.World
	avatar *avatar.Avatar
	rig    *anim.Rig
	camera *camera.ThirdPersonCamera
	audio  *audio.Manager
	input  *input.Input
	win    *window.Window
	view   *window.TopDown
	shots  *debug.ScreenshotCapture
	fps    *debug.FPSCounter
	paused bool
}

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.InitLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Motion Sandbox ===")

	s, err := newSandbox(cfg)
	if err != nil {
		logger.Error("failed to create sandbox", zap.Error(err))
		os.Exit(1)
	}
	defer s.close()

	var reload <-chan string
	if path := config.ConfigPath(); path != "" {
		w, err := config.NewWatcher(path)
		if err != nil {
			logger.Warn("config hot reload disabled", zap.Error(err))
		} else {
			defer w.Close()
			reload = w.Events
		}
	}

	s.run(reload)
	logger.Info("sandbox closed normally")
}

func newSandbox(cfg *config.Config) (*sandbox, error) {
	level, err := arena.LoadLevel(cfg.Sim.Level)
	if err != nil {
		return nil, err
	}

	win, err := window.New(cfg.Window)
	if err != nil {
		return nil, err
	}

	s := &sandbox{
		world:  arena.NewWorld(level, cfg.Prop),
		input:  input.New(input.DefaultBindings()),
		win:    win,
		view:   window.NewTopDown(win.DrawableSize()),
		camera: camera.NewThirdPersonCamera(cfg.Camera),
		shots:  debug.NewScreenshotCapture("screenshots", "sandbox"),
		fps:    debug.NewFPSCounter(time.Second),
	}
	if cfg.Audio.Enabled {
		s.audio = newAudio(cfg.Audio)
	}
	if err := s.rebuild(cfg); err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

// newAudio starts effect sounds. Missing sounds or devices only cost the
// sound, never the sandbox.
func newAudio(cfg config.AudioConfig) *audio.Manager {
	m := audio.New(cfg)
	if _, err := m.LoadEffects(cfg.SoundDir); err != nil {
		logger.Warn("no effect sounds", zap.Error(err))
		return nil
	}
	if err := m.Init(); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
		return nil
	}
	return m
}

func (s *sandbox) close() {
	if s.audio != nil {
		s.audio.Close()
	}
	s.win.Close()
}

// rebuild creates a fresh avatar from cfg, keeping the old one's position.
func (s *sandbox) rebuild(cfg *config.Config) error {
	rig := anim.NewRig(cfg.Animation)
	yaw := s.world.SpawnYaw()
	if s.avatar != nil {
		yaw = s.avatar.Snapshot().Yaw
	}
	av, err := avatar.New(cfg, avatar.Deps{
		Physics:   s.world,
		Shape:     s.world.Body(),
		Mesh:      s.world.Body(),
		Effects:   rig,
		Clips:     rig,
		Observers: []motion.TickObserver{rig},
		Yaw:       yaw,
	})
	if err != nil {
		return err
	}
	if s.audio != nil {
		rig.OnEffect(s.audio.PlayEffect)
	}
	if s.avatar != nil {
		// The new avatar starts standing.
		body := s.world.Body()
		body.SetCollisionHeight(cfg.Crouch.StandingHeight)
		body.SetMeshScale(math.Vec3{X: 1, Y: cfg.Crouch.StandingScaleY, Z: 1})
		av.Teleport(s.avatar.Position())
	}

	s.cfg, s.avatar, s.rig = cfg, av, rig
	return nil
}

func (s *sandbox) run(reload <-chan string) {
	dt := s.cfg.Sim.TickDuration()
	step := time.Duration(float64(dt) * float64(time.Second))
	last := time.Now()
	var acc time.Duration
	var title string

	for {
		if s.input.Update() {
			return
		}
		for _, e := range s.input.Events() {
			if e.Type == input.EventWindowResize {
				s.view.Resize(s.win.DrawableSize())
			}
		}
		if s.input.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
			s.paused = !s.paused
			sdl.SetRelativeMouseMode(!s.paused)
			logger.Info("sandbox paused", zap.Bool("paused", s.paused))
		}
		dx, dy := s.input.MouseDelta()
		s.camera.HandleMouse(float32(dx), float32(dy))
		s.camera.HandleZoom(float32(s.input.Wheel()))

		select {
		case path, ok := <-reload:
			if !ok {
				reload = nil
				break
			}
			s.reload(path)
			dt = s.cfg.Sim.TickDuration()
			step = time.Duration(float64(dt) * float64(time.Second))
		default:
		}

		now := time.Now()
		frame := now.Sub(last)
		last = now
		s.fps.Frame(frame)
		if !s.paused {
			acc += frame
		}
		for n := 0; acc >= step && n < maxStepsPerFrame; n++ {
			s.avatar.Tick(s.input.Frame(s.camera.Relative), dt)
			s.world.Step(dt)
			acc -= step
		}
		if acc > step*maxStepsPerFrame {
			acc = 0
		}

		s.view.Draw(s.world, s.avatar.Snapshot())
		if s.input.IsKeyPressed(sdl.SCANCODE_F12) {
			s.screenshot()
		}
		if s.input.IsKeyPressed(sdl.SCANCODE_F5) {
			s.saveConfig()
		}
		if t := s.title(); t != title {
			s.win.SetTitle(t)
			title = t
		}
		s.win.SwapBuffers()
	}
}

func (s *sandbox) title() string {
	t := fmt.Sprintf("%s | %s | %.0f fps", s.cfg.Window.Title, strings.ReplaceAll(s.rig.Label(), "\n", " | "), s.fps.FPS())
	if s.paused {
		t += " | paused"
	}
	return t
}

// saveConfig persists the running config, including env and flag overrides.
func (s *sandbox) saveConfig() {
	if err := s.cfg.Save(); err != nil {
		logger.Warn("config save failed", zap.Error(err))
		return
	}
	logger.Info("config saved", zap.String("dir", config.ConfigDir()))
}

func (s *sandbox) screenshot() {
	pixels, w, h := s.win.ReadPixels()
	name, err := s.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("file", name))
}

func (s *sandbox) reload(path string) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		logger.Warn("config reload rejected", zap.String("path", path), zap.Error(err))
		return
	}
	if err := cfg.InitLogging(); err != nil {
		logger.Warn("logging reload failed", zap.Error(err))
	}
	if err := s.rebuild(cfg); err != nil {
		logger.Warn("avatar rebuild failed", zap.Error(err))
		return
	}
	if s.audio != nil {
		s.audio.SetMasterVolume(cfg.Audio.MasterVolume)
		s.audio.SetSFXVolume(cfg.Audio.SFXVolume)
	}
	yaw := s.camera.Yaw
	s.camera = camera.NewThirdPersonCamera(cfg.Camera)
	s.camera.Yaw = yaw
	logger.Info("config reloaded", zap.String("path", path))
}
