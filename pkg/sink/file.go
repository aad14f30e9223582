package sink

import (
	"fmt"
	"os"

	plerrors "github.com/kwgt/powerlog/pkg/common/errors"
	"github.com/kwgt/powerlog/pkg/metrics"
)

// FileStorage opens local files as recording destinations. The destination
// is created if missing and truncated if present, matching a fresh
// recording session.
type FileStorage struct {
	// Perm is the file mode for newly created files. Zero means 0o644.
	Perm os.FileMode

	// Registry counts opens and open failures when non-nil.
	Registry *metrics.Registry
}

// NewFileStorage creates a FileStorage with default permissions.
func NewFileStorage() *FileStorage {
	return &FileStorage{}
}

// Open implements Storage.
func (fs *FileStorage) Open(path string) (Sink, error) {
	perm := fs.Perm
	if perm == 0 {
		perm = 0o644
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if fs.Registry != nil {
		fs.Registry.SinkOpens.WithLabelValues("file").Inc()
		if err != nil {
			fs.Registry.SinkOpenErrors.WithLabelValues("file").Inc()
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", plerrors.ErrResource, path, err)
	}
	return f, nil
}
