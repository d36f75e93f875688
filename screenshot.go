package spritebatch

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"
)

// Screenshot writes the current target to dir as <timestamp>_<label>.png
// and returns the file path. Call it after Batcher.End; quads still pending
// in a batcher are not on the target yet.
func (e *EbitenBackend) Screenshot(dir, label string) (string, error) {
	if e.target == nil {
		return "", errors.New("spritebatch: screenshot: no target")
	}
	b := e.target.Bounds()
	pix := make([]byte, 4*b.Dx()*b.Dy())
	e.target.ReadPixels(pix)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("spritebatch: screenshot: %w", err)
	}
	name := time.Now().Format("20060102_150405") + "_" + fileLabel(label) + ".png"
	path := filepath.Join(dir, name)
	if err := writePNG(path, unpremultiply(pix, b.Dx(), b.Dy())); err != nil {
		return "", fmt.Errorf("spritebatch: screenshot: %w", err)
	}
	return path, nil
}

// unpremultiply wraps premultiplied RGBA8 pixels and converts them to
// straight alpha, which is what PNG stores.
func unpremultiply(pix []byte, w, h int) *image.NRGBA {
	src := &image.RGBA{Pix: pix, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}
	dst := image.NewNRGBA(src.Rect)
	draw.Copy(dst, image.Point{}, src, src.Rect, draw.Src, nil)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// fileLabel keeps letters, digits, '-' and '.' and turns everything else
// into '_'.
func fileLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
