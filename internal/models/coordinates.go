package models

// Default map position used until a better fix arrives: the marker starts here
// and is replaced by the location provider or the first map press.
const (
	DefaultLatitude  = 37.78825
	DefaultLongitude = -122.4324

	defaultLatitudeDelta  = 0.0922
	defaultLongitudeDelta = 0.0421
)

// Coordinates represents a geographical point defined by its latitude and longitude.
type Coordinates struct {
	Latitude  float64 // Latitude of the geographical point.
	Longitude float64 // Longitude of the geographical point.
}

// Region represents the visible map viewport: a center point plus the
// latitude/longitude spans that control the zoom level.
type Region struct {
	Center         Coordinates // Center of the viewport.
	LatitudeDelta  float64     // Vertical span of the viewport, in degrees.
	LongitudeDelta float64     // Horizontal span of the viewport, in degrees.
}

// DefaultCoordinates returns the compile-time default marker position.
func DefaultCoordinates() Coordinates {
	return Coordinates{Latitude: DefaultLatitude, Longitude: DefaultLongitude}
}

// DefaultRegion returns the initial viewport: default center, default zoom.
func DefaultRegion() Region {
	return Region{
		Center:         DefaultCoordinates(),
		LatitudeDelta:  defaultLatitudeDelta,
		LongitudeDelta: defaultLongitudeDelta,
	}
}
