package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/crimson-sun/newsdesk/internal/model"
)

// ErrNotFound is returned by a Source when its location does not exist.
var ErrNotFound = errors.New("location not found")

// Source defines the interface all input formats must implement.
type Source interface {
	// Load reads every record at the location. Records are not yet tagged.
	Load(ctx context.Context, loc Location) ([]model.RawRecord, error)
}

// Location is one input file and the tag its records carry.
type Location struct {
	Path   string
	Format string
	Tag    string
}

func (l Location) String() string {
	return l.Path
}

// Open opens the location's file, mapping a missing file to ErrNotFound.
func Open(loc Location) (*os.File, error) {
	f, err := os.Open(loc.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", loc.Path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", loc.Path, err)
	}
	return f, nil
}

// DecodeObject decodes exactly one JSON object from b. Numbers are kept as
// json.Number so they render back unchanged. Trailing data is an error.
func DecodeObject(b []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.New("not a JSON object")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON object")
	}
	return m, nil
}
