package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	imageExt = ".jpg"
	audioExt = ".m4a"
)

var ErrInvalidRef = errors.New("invalid media reference")

// FileStore keeps journal photos and voice notes as flat files in one
// directory. References are bare file names.
type FileStore struct {
	dir    string
	logger *zap.Logger
}

func NewFileStore(dir string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{dir: dir, logger: logger.Named("media")}
}

// SaveImage writes data as a new image file. It returns "" on failure.
func (s *FileStore) SaveImage(data []byte) string {
	name := uuid.NewString() + imageExt
	if err := s.write(name, func(f *os.File) error {
		_, err := f.Write(data)
		return err
	}); err != nil {
		s.logger.Warn("save image failed", zap.Error(err))
		return ""
	}
	return name
}

// SaveAudio copies the recording at srcPath into the store. It returns "" on
// failure.
func (s *FileStore) SaveAudio(srcPath string) string {
	src, err := os.Open(srcPath)
	if err != nil {
		s.logger.Warn("save audio failed", zap.String("src", srcPath), zap.Error(err))
		return ""
	}
	defer src.Close()

	name := uuid.NewString() + audioExt
	if err := s.write(name, func(f *os.File) error {
		_, err := io.Copy(f, src)
		return err
	}); err != nil {
		s.logger.Warn("save audio failed", zap.String("src", srcPath), zap.Error(err))
		return ""
	}
	return name
}

func (s *FileStore) Read(ref string) ([]byte, error) {
	path, err := s.Path(ref)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read media %s: %w", ref, err)
	}
	return data, nil
}

// Path resolves ref inside the store directory.
func (s *FileStore) Path(ref string) (string, error) {
	if ref == "" || ref != filepath.Base(ref) || strings.HasPrefix(ref, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	return filepath.Join(s.dir, ref), nil
}

func (s *FileStore) write(name string, fill func(f *os.File) error) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create media dir: %w", err)
	}
	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := fill(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}
