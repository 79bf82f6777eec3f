package output

import (
	"context"

	"github.com/crimson-sun/newsdesk/internal/model"
)

// Output defines the interface for dataset export destinations.
type Output interface {
	Write(ctx context.Context, rec model.Record) error
	Close() error
}
