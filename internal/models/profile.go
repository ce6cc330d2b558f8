package models

// Profile is the public GitHub profile of a developer. It is fetched once per
// signup attempt and never mutated; only the fields the backend cares about are
// kept. Field names follow the GitHub REST API.
type Profile struct {
	Login     string `json:"login"`      // Login is the GitHub username.
	AvatarURL string `json:"avatar_url"` // AvatarURL points at the profile picture.
	Name      string `json:"name"`       // Name is the display name, may be empty.
	Company   string `json:"company"`    // Company affiliation, may be empty.
	Bio       string `json:"bio"`        // Bio is the free-form profile text, may be empty.
}

// Registration is the record submitted to the backend: the developer's profile
// plus the map coordinate they picked for themselves.
type Registration struct {
	Login     string  `json:"login"`
	AvatarURL string  `json:"avatar_url"`
	Name      string  `json:"name"`
	Company   string  `json:"company"`
	Bio       string  `json:"bio"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewRegistration combines a fetched profile with the chosen marker position.
func NewRegistration(profile Profile, marker Coordinates) Registration {
	return Registration{
		Login:     profile.Login,
		AvatarURL: profile.AvatarURL,
		Name:      profile.Name,
		Company:   profile.Company,
		Bio:       profile.Bio,
		Latitude:  marker.Latitude,
		Longitude: marker.Longitude,
	}
}
