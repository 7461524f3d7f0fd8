package display

import (
	"bufio"
	"image"
	"os"
)

// Decoder turns an image file into pixels.
type Decoder interface {
	Decode(path string) (image.Image, error)
}

// FileDecoder uses the formats registered with the image package.
type FileDecoder struct{}

func (FileDecoder) Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, err
	}
	return img, nil
}
