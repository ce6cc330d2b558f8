package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Houeta/devpin/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider resolves the caller's position through the Google Maps
// Geolocation API, using the requesting IP as the only signal.
type GoogleProvider struct {
	client GeolocateAPI // client is the Google Maps API client
	log    *slog.Logger // log is the logger for logging operations
}

type GeolocateAPI interface {
	Geolocate(ctx context.Context, r *maps.GeolocationRequest) (*maps.GeolocationResult, error)
}

// ErrEmptyGeolocation is returned when the Geolocation API responds with an empty result.
var ErrEmptyGeolocation = errors.New("get empty response from Google Geolocation API")

// NewGoogleProvider initializes a new GoogleProvider with the given API client and logger.
func NewGoogleProvider(client GeolocateAPI, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Locate asks the Geolocation API for an IP-based position estimate.
// The accuracy radius the API reports alongside the point is ignored: the
// marker only needs a plausible starting position, not a precise one.
func (gp *GoogleProvider) Locate(ctx context.Context) (*models.Coordinates, error) {
	gp.log.DebugContext(ctx, "Locating using Google Geolocation API")

	req := maps.GeolocationRequest{ConsiderIP: true}
	result, err := gp.client.Geolocate(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geolocate: %w", err)
	}

	if result == nil {
		return nil, ErrEmptyGeolocation
	}

	return &models.Coordinates{Latitude: result.Location.Lat, Longitude: result.Location.Lng}, nil
}
