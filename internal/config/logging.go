package config

import "github.com/Faultbox/motioncore/internal/logger"

// Categories maps the debug switches onto logger categories.
func (d DebugConfig) Categories() map[logger.Category]bool {
	return map[logger.Category]bool{
		logger.CategoryLedge:    d.Ledge,
		logger.CategoryMovement: d.Movement,
		logger.CategoryState:    d.Transitions,
		logger.CategoryRig:      d.Rig,
		logger.CategoryProp:     d.Props,
	}
}

// InitLogging initializes the global logger and category switches.
func (c *Config) InitLogging() error {
	if err := logger.Init(c.Logging.Level, c.Logging.LogFile); err != nil {
		return err
	}
	logger.SetCategories(c.Debug.Enabled, c.Debug.Categories())
	return nil
}
