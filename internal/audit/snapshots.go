package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// SnapshotStore writes JSON snapshots of data about to be overwritten, such as
// book prices before a bulk adjustment, so the previous state can be restored
// by hand.
type SnapshotStore struct {
	dir string
	now func() time.Time
}

func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{dir: dir, now: time.Now}
}

// Save writes data to <dir>/<kind>-<timestamp>-<uuid>.json and returns the file name.
func (s *SnapshotStore) Save(kind string, data any) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot directory: %w", err)
	}

	filename := fmt.Sprintf("%s-%s-%s.json", kind, s.now().UTC().Format("20060102T150405Z"), uuid.New().String())

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, filename), payload, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return filename, nil
}
