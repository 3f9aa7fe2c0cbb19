// Package screenshot saves framebuffer contents as image files.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/image/bmp"
)

// Supported file formats.
const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

var encoders = map[string]func(io.Writer, image.Image) error{
	FormatPNG: png.Encode,
	FormatBMP: bmp.Encode,
}

// Capture writes framebuffer snapshots to a directory.
type Capture struct {
	outputDir string
	prefix    string
	format    string
	encode    func(io.Writer, image.Image) error
	now       func() time.Time
}

// New creates a capture handler. An empty dir means the working directory.
func New(outputDir, prefix, format string) (*Capture, error) {
	encode, ok := encoders[format]
	if !ok {
		return nil, fmt.Errorf("unsupported screenshot format %q", format)
	}
	return &Capture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		encode:    encode,
		now:       time.Now,
	}, nil
}

// Save encodes bottom-up RGBA pixels, as glReadPixels returns them, and
// returns the written path. A failed write leaves no file behind.
func (c *Capture) Save(pixels []byte, width, height int) (path string, err error) {
	img, err := FromGL(pixels, width, height)
	if err != nil {
		return "", err
	}

	if c.outputDir != "" {
		if err := os.MkdirAll(c.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := c.Filename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		err = multierr.Append(err, file.Close())
		if err != nil {
			os.Remove(filename)
			path = ""
		}
	}()

	if err := c.encode(file, img); err != nil {
		return "", fmt.Errorf("encoding %s: %w", c.format, err)
	}
	return filename, nil
}

// Filename returns the path the next capture would be written to.
func (c *Capture) Filename() string {
	name := fmt.Sprintf("%s_%s.%s", c.prefix, c.now().Format("2006-01-02_15-04-05.000"), c.format)
	if c.outputDir != "" {
		name = filepath.Join(c.outputDir, name)
	}
	return name
}

// FromGL converts bottom-up RGBA rows into a top-down image.
func FromGL(pixels []byte, width, height int) (*image.RGBA, error) {
	if width < 0 || height < 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}
