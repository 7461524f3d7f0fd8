// Package fyneui provides the fyne backed window and clock used by the
// slideshow. Everything here runs on the fyne event loop.
package fyneui

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"

	"github.com/matjam/smoothshow/internal/display"
	"github.com/matjam/smoothshow/internal/scheduler"
)

// Window wraps the single fyne window of the slideshow.
type Window struct {
	app   fyne.App
	win   fyne.Window
	image *canvas.Image

	onCancel func()
	onClose  func()
	onResize func()
}

var _ display.Window = (*Window)(nil)

func New(appID, title string) *Window {
	return newWindow(app.NewWithID(appID), title)
}

func newWindow(a fyne.App, title string) *Window {
	w := a.NewWindow(title)

	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillOriginal
	img.ScaleMode = canvas.ImageScaleSmooth

	fw := &Window{app: a, win: w, image: img}

	background := canvas.NewRectangle(color.Black)
	content := container.New(&fillLayout{resized: fw.resized}, background, container.NewCenter(img))
	w.SetContent(content)
	w.SetPadded(false)

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape && fw.onCancel != nil {
			fw.onCancel()
		}
	})
	w.SetCloseIntercept(fw.closeRequested)

	return fw
}

func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
}

func (w *Window) SetIcon(path string) error {
	res, err := fyne.LoadResourceFromPath(path)
	if err != nil {
		return fmt.Errorf("load icon %s: %w", path, err)
	}
	w.win.SetIcon(res)
	return nil
}

func (w *Window) SetFullScreen() {
	w.win.SetFullScreen(true)
}

// ScreenSize reports the fullscreen canvas in pixels. It is zero until the
// window has been laid out.
func (w *Window) ScreenSize() (int, int) {
	c := w.win.Canvas()
	size := c.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return 0, 0
	}
	return c.PixelCoordinateForPosition(fyne.NewPos(size.Width, size.Height))
}

func (w *Window) SetImage(img image.Image) {
	w.image.Image = img
	w.image.Refresh()
}

func (w *Window) Confirm(title, message string, answer func(yes bool)) {
	dialog.ShowConfirm(title, message, answer, w.win)
}

func (w *Window) OnCancelKey(fn func()) {
	w.onCancel = fn
}

func (w *Window) OnClose(fn func()) {
	w.onClose = fn
}

func (w *Window) OnResize(fn func()) {
	w.onResize = fn
}

func (w *Window) closeRequested() {
	if w.onClose != nil {
		w.onClose()
		return
	}
	w.win.Close()
}

func (w *Window) resized() {
	if w.onResize != nil {
		w.onResize()
	}
}

// fillLayout stretches every child over the whole window and reports each new
// size once.
type fillLayout struct {
	size    fyne.Size
	resized func()
}

func (l *fillLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Move(fyne.NewPos(0, 0))
		o.Resize(size)
	}
	if size == l.size {
		return
	}
	l.size = size
	if l.resized != nil {
		l.resized()
	}
}

func (l *fillLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	size := fyne.NewSize(0, 0)
	for _, o := range objects {
		size = size.Max(o.MinSize())
	}
	return size
}

// Run shows the window and blocks in the event loop. started is called on the
// event loop once the app is up.
func (w *Window) Run(started func()) {
	w.app.Lifecycle().SetOnStarted(started)
	w.win.ShowAndRun()
}

// Clock delivers scheduler timers on the fyne event loop.
type Clock struct{}

func (Clock) AfterFunc(d time.Duration, fn func()) scheduler.Timer {
	return time.AfterFunc(d, func() {
		fyne.Do(fn)
	})
}
