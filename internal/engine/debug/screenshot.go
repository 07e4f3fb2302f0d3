// Package debug saves rendered frames to disk.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/derethmap/internal/logger"
)

const timestampLayout = "2006-01-02_15-04-05.000"

// Screenshots writes frames as timestamped PNG files.
type Screenshots struct {
	Dir    string
	Prefix string
	Now    func() time.Time
}

// NewScreenshots creates a screenshot writer. An empty dir writes to the
// working directory.
func NewScreenshots(dir, prefix string) *Screenshots {
	return &Screenshots{Dir: dir, Prefix: prefix, Now: time.Now}
}

// Filename returns the path the next screenshot would be written to.
func (s *Screenshots) Filename() string {
	name := fmt.Sprintf("%s_%s.png", s.Prefix, s.Now().Format(timestampLayout))
	if s.Dir != "" {
		name = filepath.Join(s.Dir, name)
	}
	return name
}

// Save writes img and returns its path.
func (s *Screenshots) Save(img image.Image) (string, error) {
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	path := s.Filename()
	if err := SavePNG(path, img); err != nil {
		return "", err
	}
	logger.Info("screenshot saved", zap.String("path", path))
	return path, nil
}

// SavePNG encodes img to a PNG file at path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return f.Close()
}
