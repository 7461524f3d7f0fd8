package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/matjam/smoothshow/internal/catalog"
	"github.com/matjam/smoothshow/internal/cli/cmd/utils"
	"github.com/matjam/smoothshow/internal/display"
	"github.com/matjam/smoothshow/internal/fyneui"
	"github.com/matjam/smoothshow/internal/scheduler"
	"github.com/matjam/smoothshow/internal/types"
	"github.com/sevlyar/go-daemon"
)

const appID = "com.github.matjam.smoothshow"

// SetupLogging applies the verbosity from cfg to the default logger.
func SetupLogging(cfg *types.Config) {
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
		log.Debug("Enabled verbose mode")
	}
}

// Window is the toolkit window the slideshow runs in.
type Window interface {
	display.Window
	Run(started func())
}

var (
	newWindow = func(appID, title string) Window {
		return fyneui.New(appID, title)
	}
	osExit = os.Exit
)

// StartSlideshow builds the catalog and runs the slideshow until the process
// exits. It only returns early, with an error, when there is nothing to show.
func StartSlideshow(cfg *types.Config) error {
	release := func() {}
	if cfg.Background {
		release = daemonize()
	}

	if os.Getenv("BACKGROUND_PROCESS") == "1" {
		setupRotatingLogger(cfg.LogFile, cfg.Verbose)
	}

	log.Infof("StartSlideshow() started in PID: %d", os.Getpid())

	images, err := prepare(cfg)
	if err != nil {
		release()
		return err
	}

	win := newWindow(appID, cfg.AppName)
	controller := display.New(cfg, win, display.WithExit(exitWith(release)))
	show := scheduler.New(images, cfg.DelayDuration(), controller, fyneui.Clock{})
	controller.Attach(show)
	controller.Setup()

	win.Run(func() {
		w, h := controller.ScreenSize()
		log.Debugf("Detected screen: %d x %d", w, h)
		show.Start()
	})

	show.Stop()
	release()
	log.Infof("smoothshow exited")
	return nil
}

// prepare builds the image catalog. Nothing is shown if it fails.
func prepare(cfg *types.Config) (catalog.Catalog, error) {
	log.Debugf("Set delay to %d seconds", cfg.Delay)
	log.Debugf("Set image source to %s", cfg.Source)

	log.Info("Searching for images ...")
	images, err := catalog.Build(cfg.Source)
	if err != nil {
		return nil, err
	}
	log.Infof("Found %d images in %s", len(images), cfg.Source)
	return images, nil
}

// exitWith releases background resources before the process exits.
func exitWith(release func()) func(code int) {
	return func(code int) {
		release()
		osExit(code)
	}
}

// daemonize re-executes the process detached from the terminal. The parent
// exits here; the child continues and gets a release func for its pid file.
func daemonize() func() {
	ctx := &daemon.Context{
		PidFileName: filepath.Join(utils.RuntimeDir(), "smoothshow.pid"),
		PidFilePerm: 0644,
		Umask:       027,
		Env:         append(os.Environ(), "BACKGROUND_PROCESS=1"),
	}

	child, err := ctx.Reborn()
	if err != nil {
		log.Fatalf("Unable to run in background: %v", err)
	}
	if child != nil {
		log.Infof("smoothshow running in background, PID: %d", child.Pid)
		os.Exit(0)
	}

	return func() {
		if err := ctx.Release(); err != nil {
			log.Errorf("Failed to release pid file: %v", err)
		}
	}
}

func setupRotatingLogger(logPath string, verbose bool) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Fatalf("failed to create log directory: %v", err)
	}

	writer, err := rotatelogs.New(
		logPath+".%Y%m%d%H%M",
		rotatelogs.WithLinkName(logPath),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationSize(10*1024*1024),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		log.Fatalf("failed to configure log rotation: %v", err)
	}

	log.SetOutput(writer)
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}
