// Package config handles avatar configuration loading and management.
package config

// Config holds all avatar and tool settings.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envPrefix:"LOG_"`
	Debug     DebugConfig     `yaml:"debug" envPrefix:"DEBUG_"`
	Movement  MovementConfig  `yaml:"movement" envPrefix:"MOVEMENT_"`
	Jump      JumpConfig      `yaml:"jump" envPrefix:"JUMP_"`
	Dash      DashConfig      `yaml:"dash" envPrefix:"DASH_"`
	Crouch    CrouchConfig    `yaml:"crouch" envPrefix:"CROUCH_"`
	LedgeGrab LedgeGrabConfig `yaml:"ledge_grab" envPrefix:"LEDGE_"`
	Attack    AttackConfig    `yaml:"attack" envPrefix:"ATTACK_"`
	Push      PushConfig      `yaml:"push" envPrefix:"PUSH_"`
	Prop      PropConfig      `yaml:"prop" envPrefix:"PROP_"`
	Animation AnimationConfig `yaml:"animation" envPrefix:"ANIM_"`
	Camera    CameraConfig    `yaml:"camera" envPrefix:"CAMERA_"`
	Window    WindowConfig    `yaml:"window" envPrefix:"WINDOW_"`
	Audio     AudioConfig     `yaml:"audio" envPrefix:"AUDIO_"`
	Sim       SimConfig       `yaml:"sim" envPrefix:"SIM_"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" env:"LEVEL"`
	LogFile string `yaml:"log_file" env:"FILE"`
}

// DebugConfig switches per-subsystem debug traces.
type DebugConfig struct {
	Enabled     bool `yaml:"enabled" env:"ENABLED"`
	Ledge       bool `yaml:"ledge" env:"LEDGE"`
	Movement    bool `yaml:"movement" env:"MOVEMENT"`
	Transitions bool `yaml:"transitions" env:"TRANSITIONS"`
	Rig         bool `yaml:"rig" env:"RIG"`
	Props       bool `yaml:"props" env:"PROPS"`
}

// MovementConfig holds default ground and air movement.
type MovementConfig struct {
	Speed           float32 `yaml:"speed" env:"SPEED"`
	Acceleration    float32 `yaml:"acceleration" env:"ACCELERATION"`
	AirAcceleration float32 `yaml:"air_acceleration" env:"AIR_ACCELERATION"`
	AirDrag         float32 `yaml:"air_drag" env:"AIR_DRAG"`
	GroundFriction  float32 `yaml:"ground_friction" env:"GROUND_FRICTION"`
	GroundTurnRate  float32 `yaml:"ground_turn_rate" env:"GROUND_TURN_RATE"`
	AirTurnRate     float32 `yaml:"air_turn_rate" env:"AIR_TURN_RATE"`
}

// JumpProfile is one jump arc.
type JumpProfile struct {
	Height        float32 `yaml:"height" env:"HEIGHT"`
	TimeToPeak    float32 `yaml:"time_to_peak" env:"TIME_TO_PEAK"`
	TimeToDescent float32 `yaml:"time_to_descent" env:"TIME_TO_DESCENT"`
}

// JumpConfig holds jump settings.
type JumpConfig struct {
	Normal              JumpProfile   `yaml:"normal" envPrefix:"NORMAL_"`
	Charged             JumpProfile   `yaml:"charged" envPrefix:"CHARGED_"`
	ExtraJumps          int           `yaml:"extra_jumps" env:"EXTRA_JUMPS"`
	CoyoteTime          float32       `yaml:"coyote_time" env:"COYOTE_TIME"`
	CancelMultiplier    float32       `yaml:"cancel_multiplier" env:"CANCEL_MULTIPLIER"`
	EnableJumpCancel    bool          `yaml:"enable_jump_cancel" env:"ENABLE_CANCEL"`
	EnableBunnyHop      bool          `yaml:"enable_bunny_hop" env:"ENABLE_BUNNY_HOP"`
	BunnyHopWindow      float32       `yaml:"bunny_hop_window" env:"BUNNY_HOP_WINDOW"`
	BunnyHopThreshold   float32       `yaml:"bunny_hop_threshold" env:"BUNNY_HOP_THRESHOLD"`
	BunnyHopBoost       float32       `yaml:"bunny_hop_boost" env:"BUNNY_HOP_BOOST"`
	CrouchJumpEnabled   bool          `yaml:"crouch_jump_enabled" env:"CROUCH_ENABLED"`
	CrouchJumpAirPolicy AirJumpPolicy `yaml:"crouch_jump_air_policy" env:"CROUCH_AIR_POLICY"`
}

// AirJumpPolicy decides what a charged jump does in the air.
type AirJumpPolicy string

const (
	// AirJumpDowngrade performs a normal air jump.
	AirJumpDowngrade AirJumpPolicy = "downgrade"
	// AirJumpDeny performs no jump.
	AirJumpDeny AirJumpPolicy = "deny"
)

// DashRefill decides when spent dashes come back.
type DashRefill string

const (
	DashRefillOnLanding DashRefill = "on_landing"
	DashRefillDelay     DashRefill = "delay"
	DashRefillCooldown  DashRefill = "cooldown"
)

// DashConfig holds dash settings.
type DashConfig struct {
	Speed               float32    `yaml:"speed" env:"SPEED"`
	Duration            float32    `yaml:"duration" env:"DURATION"`
	Cooldown            float32    `yaml:"cooldown" env:"COOLDOWN"`
	ExtraDashes         int        `yaml:"extra_dashes" env:"EXTRA_DASHES"`
	SimilarityThreshold float32    `yaml:"similarity_threshold" env:"SIMILARITY"`
	MinSpeed            float32    `yaml:"min_speed" env:"MIN_SPEED"`
	Refill              DashRefill `yaml:"refill" env:"REFILL"`
	RefillDelay         float32    `yaml:"refill_delay" env:"REFILL_DELAY"`
}

// CrouchConfig holds crouch and slide settings.
type CrouchConfig struct {
	MovementModifier float32 `yaml:"movement_modifier" env:"MOVEMENT_MODIFIER"`
	StandingHeight   float32 `yaml:"standing_height" env:"STANDING_HEIGHT"`
	CrouchHeight     float32 `yaml:"crouch_height" env:"HEIGHT"`
	StandingScaleY   float32 `yaml:"standing_scale_y" env:"STANDING_SCALE_Y"`
	CrouchScaleY     float32 `yaml:"crouch_scale_y" env:"SCALE_Y"`
	SlideThreshold   float32 `yaml:"slide_threshold" env:"SLIDE_THRESHOLD"`
	SlideMinSpeed    float32 `yaml:"slide_min_speed" env:"SLIDE_MIN_SPEED"`
	SlideFriction    float32 `yaml:"slide_friction" env:"SLIDE_FRICTION"`
	SlideTurnRate    float32 `yaml:"slide_turn_rate" env:"SLIDE_TURN_RATE"`
	SlopeExponent    float32 `yaml:"slope_exponent" env:"SLOPE_EXPONENT"`
	SlopeScale       float32 `yaml:"slope_scale" env:"SLOPE_SCALE"`
}

// LedgeGrabConfig holds ledge detection and hang settings.
type LedgeGrabConfig struct {
	ForwardDistance  float32 `yaml:"forward_distance" env:"FORWARD_DISTANCE"`
	WallCheckHeight  float32 `yaml:"wall_check_height" env:"WALL_CHECK_HEIGHT"`
	LedgeCheckHeight float32 `yaml:"ledge_check_height" env:"LEDGE_CHECK_HEIGHT"`
	LedgeThickness   float32 `yaml:"ledge_thickness" env:"THICKNESS"`
	MinimumFallSpeed float32 `yaml:"minimum_fall_speed" env:"MIN_FALL_SPEED"`
	HangOffset       float32 `yaml:"hang_offset" env:"HANG_OFFSET"`
	HangBelowLedge   float32 `yaml:"hang_below_ledge" env:"HANG_BELOW"`
	ReachHeight      float32 `yaml:"reach_height" env:"REACH_HEIGHT"`
	ClimbHeight      float32 `yaml:"climb_height" env:"CLIMB_HEIGHT"`
	RegrabDelay      float32 `yaml:"regrab_delay" env:"REGRAB_DELAY"`
	AllowRelease     bool    `yaml:"allow_release" env:"ALLOW_RELEASE"`
}

// AttackConfig holds attack settings.
type AttackConfig struct {
	Cooldown float32 `yaml:"cooldown" env:"COOLDOWN"`
	Duration float32 `yaml:"duration" env:"DURATION"`
	AllowAir bool    `yaml:"allow_air" env:"ALLOW_AIR"`
}

// PushConfig holds impulse push settings.
type PushConfig struct {
	Force      float32 `yaml:"force" env:"FORCE"`
	MaxNormalY float32 `yaml:"max_normal_y" env:"MAX_NORMAL_Y"`
}

// PropConfig holds destructible prop settings.
type PropConfig struct {
	MaxHealth        float32 `yaml:"max_health" env:"MAX_HEALTH"`
	DamagePerContact float32 `yaml:"damage_per_contact" env:"DAMAGE"`
	DebrisCount      int     `yaml:"debris_count" env:"DEBRIS_COUNT"`
	DebrisImpulse    float32 `yaml:"debris_impulse" env:"DEBRIS_IMPULSE"`
	RegenEnabled     bool    `yaml:"regen_enabled" env:"REGEN"`
	RegenRate        float32 `yaml:"regen_rate" env:"REGEN_RATE"`
	RegenPotency     float32 `yaml:"regen_potency" env:"REGEN_POTENCY"`
	Seed             uint64  `yaml:"seed" env:"SEED"`
}

// AnimationConfig holds rig settings.
type AnimationConfig struct {
	BlendSpeed float32 `yaml:"blend_speed" env:"BLEND_SPEED"`
	// Clips maps state names to clip lengths in seconds.
	Clips map[string]float32 `yaml:"clips"`
}

// CameraConfig holds third-person camera settings.
type CameraConfig struct {
	MouseSensitivity float32 `yaml:"mouse_sensitivity" env:"SENSITIVITY"`
	ZoomStep         float32 `yaml:"zoom_step" env:"ZOOM_STEP"`
	MinPitch         float32 `yaml:"min_pitch" env:"MIN_PITCH"`
	MaxPitch         float32 `yaml:"max_pitch" env:"MAX_PITCH"`
	MinDistance      float32 `yaml:"min_distance" env:"MIN_DISTANCE"`
	MaxDistance      float32 `yaml:"max_distance" env:"MAX_DISTANCE"`
	Distance         float32 `yaml:"distance" env:"DISTANCE"`
}

// WindowConfig holds sandbox window settings.
type WindowConfig struct {
	Width  int    `yaml:"width" env:"WIDTH"`
	Height int    `yaml:"height" env:"HEIGHT"`
	VSync  bool   `yaml:"vsync" env:"VSYNC"`
	Title  string `yaml:"title" env:"TITLE"`
}

// AudioConfig holds sandbox sound effect settings.
type AudioConfig struct {
	Enabled bool `yaml:"enabled" env:"ENABLED"`
	// SoundDir holds one <effect>.wav per effect, e.g. jump.wav.
	SoundDir     string  `yaml:"sound_dir" env:"SOUND_DIR"`
	MasterVolume float64 `yaml:"master_volume" env:"MASTER_VOLUME"`
	SFXVolume    float64 `yaml:"sfx_volume" env:"SFX_VOLUME"`
}

// SimConfig holds fixed-step settings shared by the simulator and sandbox.
type SimConfig struct {
	TickRate int    `yaml:"tick_rate" env:"TICK_RATE"`
	Level    string `yaml:"level" env:"LEVEL"`
}

// TickDuration returns the fixed step in seconds.
func (s SimConfig) TickDuration() float32 {
	if s.TickRate <= 0 {
		return 0
	}
	return 1 / float32(s.TickRate)
}

// Default returns a Config with the stock avatar feel.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Debug: DebugConfig{
			Enabled: true,
		},
		Movement: MovementConfig{
			Speed:           10,
			Acceleration:    30,
			AirAcceleration: 10,
			AirDrag:         0.5,
			GroundFriction:  200,
			GroundTurnRate:  20,
			AirTurnRate:     10,
		},
		Jump: JumpConfig{
			Normal:              JumpProfile{Height: 4, TimeToPeak: 0.5, TimeToDescent: 0.25},
			Charged:             JumpProfile{Height: 8, TimeToPeak: 0.5, TimeToDescent: 0.25},
			ExtraJumps:          1,
			CoyoteTime:          0.1,
			CancelMultiplier:    0.4,
			EnableJumpCancel:    true,
			EnableBunnyHop:      true,
			BunnyHopWindow:      0.2,
			BunnyHopThreshold:   9,
			BunnyHopBoost:       5,
			CrouchJumpEnabled:   true,
			CrouchJumpAirPolicy: AirJumpDowngrade,
		},
		Dash: DashConfig{
			Speed:               20,
			Duration:            0.2,
			Cooldown:            0.5,
			ExtraDashes:         1,
			SimilarityThreshold: 0.7,
			MinSpeed:            0.1,
			Refill:              DashRefillOnLanding,
			RefillDelay:         1,
		},
		Crouch: CrouchConfig{
			MovementModifier: 0.5,
			StandingHeight:   2,
			CrouchHeight:     1,
			StandingScaleY:   1,
			CrouchScaleY:     0.5,
			SlideThreshold:   10.1,
			SlideMinSpeed:    3,
			SlideFriction:    0.985,
			SlideTurnRate:    3,
			SlopeExponent:    0.58,
			SlopeScale:       10,
		},
		LedgeGrab: LedgeGrabConfig{
			ForwardDistance:  0.6,
			WallCheckHeight:  1.2,
			LedgeCheckHeight: 1.8,
			LedgeThickness:   0.3,
			MinimumFallSpeed: -2,
			HangOffset:       0.45,
			HangBelowLedge:   0.8,
			ReachHeight:      1.7,
			ClimbHeight:      2,
			RegrabDelay:      0.4,
			AllowRelease:     true,
		},
		Attack: AttackConfig{
			Cooldown: 0.2,
			Duration: 0.4,
			AllowAir: true,
		},
		Push: PushConfig{
			Force:      60,
			MaxNormalY: 0.5,
		},
		Prop: PropConfig{
			MaxHealth:        100,
			DamagePerContact: 20,
			DebrisCount:      4,
			DebrisImpulse:    5,
			RegenRate:        1,
			RegenPotency:     5,
		},
		Animation: AnimationConfig{
			BlendSpeed: 10,
		},
		Camera: CameraConfig{
			MouseSensitivity: 0.00075,
			ZoomStep:         0.25,
			MinPitch:         -90,
			MaxPitch:         90,
			MinDistance:      1,
			MaxDistance:      15,
			Distance:         6,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
			Title:  "motioncore sandbox",
		},
		Audio: AudioConfig{
			Enabled:      true,
			SoundDir:     "sounds",
			MasterVolume: 1,
			SFXVolume:    1,
		},
		Sim: SimConfig{
			TickRate: 60,
		},
	}
}
