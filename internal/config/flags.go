package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging and every debug category")
	flagLogFile  = flag.String("log-file", "", "Write logs to this file as well")
	flagTickRate = flag.Int("tick-rate", 0, "Fixed simulation ticks per second")
	flagLevel    = flag.String("level", "", "Arena level file")
	flagWidth    = flag.Int("width", 0, "Window width")
	flagHeight   = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug = DebugConfig{
			Enabled:     true,
			Ledge:       true,
			Movement:    true,
			Transitions: true,
			Rig:         true,
			Props:       true,
		}
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagTickRate > 0 {
		cfg.Sim.TickRate = *flagTickRate
	}
	if *flagLevel != "" {
		cfg.Sim.Level = *flagLevel
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
