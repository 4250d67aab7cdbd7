package archiver

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Archiver keeps a copy of a collection export on disk before it is cleared.
type Archiver struct {
	dir string
}

func NewArchiver(dir string) (*Archiver, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("NewArchiver(): failed to create archive directory: %w", err)
	}
	return &Archiver{dir: dir}, nil
}

func (a *Archiver) Dir() string {
	return a.dir
}

// Save writes data to "<prefix>-<UTC timestamp>.<ext>" and returns the path.
// An existing file is never overwritten.
func (a *Archiver) Save(prefix, ext string, data []byte, now time.Time) (string, error) {
	stamp := now.UTC().Format("20060102T150405.000Z")
	base := fmt.Sprintf("%s-%s", prefix, stamp)

	path := filepath.Join(a.dir, base+"."+ext)
	for i := 1; ; i++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if os.IsExist(err) {
			path = filepath.Join(a.dir, fmt.Sprintf("%s-%d.%s", base, i, ext))
			continue
		}
		if err != nil {
			return "", fmt.Errorf("Archiver.Save(): %w", err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("Archiver.Save(): %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("Archiver.Save(): %w", err)
		}
		return path, nil
	}
}
