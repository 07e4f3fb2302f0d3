package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/Faultbox/derethmap/internal/logger"
	"github.com/Faultbox/derethmap/pkg/splat"
)

// ErrUnsupported is returned for image files no decoder handles.
var ErrUnsupported = errors.New("texture: unsupported image format")

// Extensions tried, in order, for each slot file.
var Extensions = []string{".png", ".bmp", ".tga", ".tif", ".tiff"}

// Atlas is a fixed set of image slots. It samples terrain texels and alpha
// mask coverage; empty slots report ok=false.
type Atlas struct {
	slots []*image.NRGBA
	// masks only: whether a slot carries real transparency
	hasAlpha []bool
}

// NewAtlas returns an atlas with n empty slots.
func NewAtlas(n int) *Atlas {
	return &Atlas{
		slots:    make([]*image.NRGBA, n),
		hasAlpha: make([]bool, n),
	}
}

// Len returns the number of slots.
func (a *Atlas) Len() int { return len(a.slots) }

// Loaded returns how many slots hold an image.
func (a *Atlas) Loaded() int {
	n := 0
	for _, s := range a.slots {
		if s != nil {
			n++
		}
	}
	return n
}

// Set stores an image in a slot. Out of range slots are ignored.
func (a *Atlas) Set(slot int, img image.Image) {
	if slot < 0 || slot >= len(a.slots) {
		return
	}
	n := ToNRGBA(img)
	a.slots[slot] = n
	a.hasAlpha[slot] = !n.Opaque()
}

// Texel samples a slot with wrapping coordinates, v pointing north.
func (a *Atlas) Texel(slot int, u, v float32) (splat.Color, bool) {
	img := a.slot(slot)
	if img == nil {
		return splat.Color{}, false
	}
	x, y := texelAt(img, wrap(u), wrap(v))
	i := img.PixOffset(x, y)
	return splat.RGB(img.Pix[i], img.Pix[i+1], img.Pix[i+2]), true
}

// Coverage samples an alpha mask slot with clamped coordinates. Masks with
// transparency use their alpha channel; opaque masks use red.
func (a *Atlas) Coverage(slot int, u, v float32) (float32, bool) {
	img := a.slot(slot)
	if img == nil {
		return 0, false
	}
	x, y := texelAt(img, clamp01(u), clamp01(v))
	i := img.PixOffset(x, y)
	if a.hasAlpha[slot] {
		return float32(img.Pix[i+3]) / 255, true
	}
	return float32(img.Pix[i]) / 255, true
}

func (a *Atlas) slot(slot int) *image.NRGBA {
	if slot < 0 || slot >= len(a.slots) {
		return nil
	}
	return a.slots[slot]
}

// texelAt maps [0, 1] coordinates with v north to a pixel. Image row 0 is
// the top of the texture.
func texelAt(img *image.NRGBA, u, v float32) (int, int) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	x := min(int(u*float32(w)), w-1)
	y := min(int((1-v)*float32(h)), h-1)
	return max(x, 0), max(y, 0)
}

func wrap(t float32) float32 {
	return t - float32(math.Floor(float64(t)))
}

func clamp01(t float32) float32 {
	return min(max(t, 0), 1)
}

// DecodeFile decodes an image by file extension. TGA goes through DecodeTGA;
// everything else through the registered image decoders.
func DecodeFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Base(path))
	}
	return img, err
}

// LoadDir fills an atlas of n slots from files named <slot>.<ext> in dir.
// Missing slots stay empty. An empty dir yields an empty atlas.
func LoadDir(dir string, n int) (*Atlas, error) {
	a := NewAtlas(n)
	if dir == "" {
		return a, nil
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("texture dir: %w", err)
	}

	for slot := range n {
		path, ok := findSlotFile(dir, slot)
		if !ok {
			continue
		}
		img, err := DecodeFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading slot %d: %w", slot, err)
		}
		a.Set(slot, img)
	}

	logger.Debug("texture atlas loaded",
		zap.String("dir", dir),
		zap.Int("slots", n),
		zap.Int("loaded", a.Loaded()))
	return a, nil
}

func findSlotFile(dir string, slot int) (string, bool) {
	name := strconv.Itoa(slot)
	for _, ext := range Extensions {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}
