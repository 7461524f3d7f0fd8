package types

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoSource     = errors.New("no source directory configured")
	ErrInvalidDelay = errors.New("delay must be a positive number of seconds")
)

// Config is the resolved slideshow configuration. It is built once at startup
// and only read afterwards.
type Config struct {
	AppName string `json:"app_name"`
	Source  string `json:"source"`
	Delay   int    `json:"delay"` // seconds
	Verbose bool   `json:"verbose"`

	Icon       string `json:"icon"`
	Background bool   `json:"background"`
	LogFile    string `json:"log_file"`

	// Screen size override in pixels, 0 means ask the window system.
	ScreenWidth  int `json:"screen_width"`
	ScreenHeight int `json:"screen_height"`
}

func (c Config) Validate() error {
	if c.Source == "" {
		return ErrNoSource
	}
	if c.Delay <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDelay, c.Delay)
	}
	return nil
}

// DelayDuration returns the advance interval.
func (c Config) DelayDuration() time.Duration {
	return time.Duration(c.Delay) * time.Second
}

// Geometry describes one render: the decoded image size, the screen size and
// the size the image is drawn at.
type Geometry struct {
	SourceWidth, SourceHeight int
	ScreenWidth, ScreenHeight int
	TargetWidth, TargetHeight int
}

// Resized reports whether the target differs from the source size.
func (g Geometry) Resized() bool {
	return g.TargetWidth != g.SourceWidth || g.TargetHeight != g.SourceHeight
}
