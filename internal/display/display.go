// Package display owns the single slideshow window: its title, icon and
// geometry, the image surface, and the two ways of quitting.
package display

import (
	"fmt"
	"image"
	"os"

	"github.com/charmbracelet/log"
	"github.com/matjam/smoothshow/internal/scaling"
	"github.com/matjam/smoothshow/internal/types"
)

// Window is the part of the windowing toolkit the controller drives. All
// callbacks are delivered on the event loop goroutine.
type Window interface {
	SetTitle(title string)
	SetIcon(path string) error
	// SetFullScreen sizes the window to the whole screen at the origin.
	SetFullScreen()
	// ScreenSize returns the screen size in pixels, or zeros if unknown.
	ScreenSize() (int, int)
	// SetImage replaces the visible image. nil clears it.
	SetImage(img image.Image)
	// Confirm shows a modal yes/no prompt and reports the answer.
	Confirm(title, message string, answer func(yes bool))
	OnCancelKey(fn func())
	OnClose(fn func())
	// OnResize is called whenever the window content is laid out at a new
	// size, including the first time the fullscreen size is known.
	OnResize(fn func())
}

// Session is the running slideshow as seen from the window.
type Session interface {
	Hold()
	Release()
	Stop()
}

type Controller struct {
	cfg     *types.Config
	win     Window
	decoder Decoder
	session Session
	exit    func(code int)

	// current is the only decoded image the controller keeps alive.
	current    image.Image
	path       string
	geometry   types.Geometry
	confirming bool
}

type Option func(*Controller)

func WithDecoder(d Decoder) Option {
	return func(c *Controller) {
		c.decoder = d
	}
}

// WithExit replaces os.Exit.
func WithExit(exit func(code int)) Option {
	return func(c *Controller) {
		c.exit = exit
	}
}

func New(cfg *types.Config, win Window, opts ...Option) *Controller {
	c := &Controller{
		cfg:     cfg,
		win:     win,
		decoder: FileDecoder{},
		exit:    os.Exit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Attach connects the session that is held, released and stopped by the quit
// paths.
func (c *Controller) Attach(s Session) {
	c.session = s
}

// Setup prepares the window and registers the close and cancel handlers.
func (c *Controller) Setup() {
	c.win.SetTitle(c.cfg.AppName)
	if c.cfg.Icon != "" {
		if err := c.win.SetIcon(c.cfg.Icon); err != nil {
			log.Debugf("No window icon: %v", err)
		}
	}
	c.win.SetFullScreen()
	c.win.OnCancelKey(c.RequestCancelWithConfirm)
	c.win.OnClose(c.RequestClose)
	c.win.OnResize(c.refit)
}

func (c *Controller) Current() string {
	return c.path
}

// Geometry returns the sizes used by the last successful render.
func (c *Controller) Geometry() types.Geometry {
	return c.geometry
}

// ScreenSize returns the screen size renders are fitted to: the configured
// override, or what the window reports.
func (c *Controller) ScreenSize() (int, int) {
	if c.cfg.ScreenWidth > 0 && c.cfg.ScreenHeight > 0 {
		return c.cfg.ScreenWidth, c.cfg.ScreenHeight
	}
	return c.win.ScreenSize()
}

// Render decodes path, fits it to the screen and swaps it into the window.
// On error the previous image stays on screen.
func (c *Controller) Render(path string) error {
	img, err := c.decoder.Decode(path)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	b := img.Bounds()
	scrW, scrH := c.ScreenSize()
	g := scaling.Fit(b.Dx(), b.Dy(), scrW, scrH)
	log.Debugf("Image size: %d x %d", g.SourceWidth, g.SourceHeight)
	log.Debugf("Screen size: %d x %d", g.ScreenWidth, g.ScreenHeight)

	scaled := img
	if g.Resized() {
		log.Debug("Resizing image")
		scaled = scaling.Resample(img, g.TargetWidth, g.TargetHeight)
	} else {
		log.Debug("No resizing needed")
	}
	log.Debugf("Final size: %d x %d", g.TargetWidth, g.TargetHeight)

	c.win.SetTitle(c.cfg.AppName + " - " + path)
	c.win.SetFullScreen()

	c.current = nil
	c.win.SetImage(scaled)
	c.current = scaled
	c.path = path
	c.geometry = g

	return nil
}

// refit draws the current image again when the screen size it was fitted to
// is out of date. The first render can happen before the window has its
// fullscreen size.
func (c *Controller) refit() {
	if c.path == "" {
		return
	}
	w, h := c.ScreenSize()
	if w <= 0 || h <= 0 {
		return
	}
	if w == c.geometry.ScreenWidth && h == c.geometry.ScreenHeight {
		return
	}
	log.Debugf("Screen size changed to %d x %d", w, h)
	if err := c.Render(c.path); err != nil {
		log.Errorf("Failed to refit %s: %v", c.path, err)
	}
}

// RequestClose quits straight away. It backs the window close button.
func (c *Controller) RequestClose() {
	log.Debug("Window closed")
	c.quit()
}

// RequestCancelWithConfirm asks before quitting. Answering no leaves the
// slideshow exactly as it was.
func (c *Controller) RequestCancelWithConfirm() {
	if c.confirming {
		return
	}
	c.confirming = true
	if c.session != nil {
		c.session.Hold()
	}

	msg := fmt.Sprintf("Do you really want to quit %s?", c.cfg.AppName)
	c.win.Confirm("Close", msg, func(yes bool) {
		c.confirming = false
		if yes {
			c.quit()
			return
		}
		if c.session != nil {
			c.session.Release()
		}
	})
}

func (c *Controller) quit() {
	log.Info("Bye")
	if c.session != nil {
		c.session.Stop()
	}
	c.current = nil
	c.win.SetImage(nil)
	c.exit(0)
}
