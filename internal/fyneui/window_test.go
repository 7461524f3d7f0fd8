package fyneui

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWindow(t *testing.T) *Window {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)
	return newWindow(a, "smoothshow")
}

func TestWindowTitle(t *testing.T) {
	w := newTestWindow(t)
	assert.Equal(t, "smoothshow", w.win.Title())

	w.SetTitle("smoothshow - /p/a.png")
	assert.Equal(t, "smoothshow - /p/a.png", w.win.Title())
}

func TestWindowFullScreen(t *testing.T) {
	w := newTestWindow(t)
	assert.False(t, w.win.FullScreen())
	w.SetFullScreen()
	assert.True(t, w.win.FullScreen())
}

func TestWindowSetImage(t *testing.T) {
	w := newTestWindow(t)
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))

	w.SetImage(img)
	assert.Equal(t, image.Image(img), w.image.Image)

	w.SetImage(nil)
	assert.Nil(t, w.image.Image)
}

func TestWindowEscapeKey(t *testing.T) {
	w := newTestWindow(t)
	calls := 0
	w.OnCancelKey(func() { calls++ })

	typed := w.win.Canvas().OnTypedKey()
	require.NotNil(t, typed)

	typed(&fyne.KeyEvent{Name: fyne.KeyReturn})
	assert.Zero(t, calls)
	typed(&fyne.KeyEvent{Name: fyne.KeyEscape})
	assert.Equal(t, 1, calls)
}

func TestWindowIcon(t *testing.T) {
	w := newTestWindow(t)

	err := w.SetIcon(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "icon.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n"), 0o644))
	require.NoError(t, w.SetIcon(path))
	require.NotNil(t, w.win.Icon())
	assert.Equal(t, "icon.png", w.win.Icon().Name())
}

func TestWindowResize(t *testing.T) {
	w := newTestWindow(t)
	calls := 0
	w.OnResize(func() { calls++ })

	w.win.Resize(fyne.NewSize(640, 480))
	assert.Equal(t, 1, calls)
	width, height := w.ScreenSize()
	assert.Equal(t, 640, width)
	assert.Equal(t, 480, height)
	assert.Equal(t, fyne.NewSize(640, 480), w.win.Content().Size())

	w.win.Resize(fyne.NewSize(640, 480))
	assert.Equal(t, 1, calls, "same size is not reported again")

	w.win.Resize(fyne.NewSize(1024, 768))
	assert.Equal(t, 2, calls)
}

func TestWindowCloseIntercept(t *testing.T) {
	w := newTestWindow(t)
	calls := 0
	w.OnClose(func() { calls++ })

	w.closeRequested()
	assert.Equal(t, 1, calls)
}

func TestClockAfterFunc(t *testing.T) {
	newTestWindow(t)

	fired := make(chan struct{})
	Clock{}.AfterFunc(time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timer never fired")
	}
}

func TestClockStop(t *testing.T) {
	newTestWindow(t)

	fired := make(chan struct{}, 1)
	timer := Clock{}.AfterFunc(time.Hour, func() { fired <- struct{}{} })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	assert.Empty(t, fired)
}
