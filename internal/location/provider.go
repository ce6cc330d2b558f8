package location

import (
	"context"

	"github.com/Houeta/devpin/internal/models"
)

// Provider is an interface that defines a method for acquiring a best-effort
// device position. The Locate method takes a context and returns the
// approximate coordinates of the caller, or an error when no fix is available.
// Callers treat every failure as "keep the default position".
type Provider interface {
	Locate(ctx context.Context) (*models.Coordinates, error)
}
