package publisher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// ErrWrite indicates the output file could not be written. The console
// output already printed by other publishers stays valid.
var ErrWrite = errors.New("output write failed")

// FilePublisher persists the rendered report to a file named from the
// collection and date range.
type FilePublisher struct {
	dir string
	log *logrus.Logger
}

func NewFilePublisher(dir string, log *logrus.Logger) *FilePublisher {
	if dir == "" {
		dir = "."
	}
	return &FilePublisher{dir: dir, log: log}
}

func (p *FilePublisher) Publish(_ context.Context, rep *Report) error {
	path := filepath.Join(p.dir, Filename(rep))
	if err := os.WriteFile(path, []byte(Render(rep)), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	p.log.WithField("path", path).Info("Wrote summary file")
	return nil
}
