package migrator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/bebrafun/marketmigrate/internal/checksum"
	"github.com/bebrafun/marketmigrate/internal/fsutil"
)

// ErrPayloadMissing classifies a migration source that does not resolve to a
// readable file. It is raised before any database work starts.
var ErrPayloadMissing = errors.New("migration payload not found")

// Payload is the SQL blob for one run, read once and immutable afterwards.
type Payload struct {
	Path     string
	SQL      []byte
	Checksum string
}

// LoadPayload resolves path (a .sql file or a migrations directory) and reads
// the payload.
func LoadPayload(path string) (*Payload, error) {
	resolved, err := fsutil.Resolve(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPayloadMissing, path)
		}
		return nil, err
	}
	b, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPayloadMissing, resolved)
		}
		return nil, err
	}
	return &Payload{Path: resolved, SQL: b, Checksum: checksum.SHA256(b)}, nil
}

// Preview returns the payload with comment-only lines dropped. Display only;
// Execute always receives the payload verbatim.
func (p *Payload) Preview() string {
	lines := strings.Split(string(p.SQL), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
