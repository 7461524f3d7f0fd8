// Package scaling decides how large an image is drawn on screen and resamples
// it to that size.
package scaling

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/matjam/smoothshow/internal/types"
)

// Margin is the share of the screen an oversized image is fitted into.
const Margin = 0.95

// TargetSize returns the size an image of srcW x srcH is drawn at on a
// scrW x scrH screen. Images that fit are never upscaled. Larger images are
// shrunk uniformly into Margin of the screen.
func TargetSize(srcW, srcH, scrW, scrH int) (int, int) {
	if srcW <= 0 || srcH <= 0 || scrW <= 0 || scrH <= 0 {
		return srcW, srcH
	}
	if srcW <= scrW && srcH <= scrH {
		return srcW, srcH
	}

	boundW := Margin * float64(scrW)
	boundH := Margin * float64(scrH)
	scale := math.Min(boundW/float64(srcW), boundH/float64(srcH))

	w := clamp(math.Round(float64(srcW)*scale), boundW)
	h := clamp(math.Round(float64(srcH)*scale), boundH)
	return w, h
}

func clamp(v, bound float64) int {
	if v > math.Floor(bound) {
		v = math.Floor(bound)
	}
	if v < 1 {
		v = 1
	}
	return int(v)
}

// Fit computes the full geometry for one render.
func Fit(srcW, srcH, scrW, scrH int) types.Geometry {
	w, h := TargetSize(srcW, srcH, scrW, scrH)
	return types.Geometry{
		SourceWidth:  srcW,
		SourceHeight: srcH,
		ScreenWidth:  scrW,
		ScreenHeight: scrH,
		TargetWidth:  w,
		TargetHeight: h,
	}
}

// Resample returns img drawn at w x h with a Catmull-Rom filter. When the size
// already matches, img itself is returned.
func Resample(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
