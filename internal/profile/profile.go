package profile

import (
	"sort"

	"github.com/AnyUserName/imgpress/internal/encoder"
)

// DefaultName is the profile used when none is requested.
const DefaultName = "balanced"

// Profile is a named set of encoding parameters.
type Profile struct {
	Name        string
	Description string
	Params      encoder.Params
}

// Built-in profiles.
var profiles = map[string]Profile{
	"balanced": {
		Name:        "balanced",
		Description: "quality 80, slowest GIF palette sampling",
		Params:      encoder.Params{Quality: encoder.DefaultQuality, Speed: encoder.DefaultSpeed},
	},
	"fast": {
		Name:        "fast",
		Description: "quality 80, sparse GIF sampling without dithering",
		Params:      encoder.Params{Quality: 80, Speed: 20},
	},
	"max-quality": {
		Name:        "max-quality",
		Description: "quality 95, full GIF sampling",
		Params:      encoder.Params{Quality: 95, Speed: 1},
	},
	"small": {
		Name:        "small",
		Description: "quality 60 for smaller JPEGs",
		Params:      encoder.Params{Quality: 60, Speed: 3},
	},
}

// Get returns a profile by name.
func Get(name string) (Profile, bool) {
	p, ok := profiles[name]
	return p, ok
}

// Default returns the balanced profile.
func Default() Profile {
	return profiles[DefaultName]
}

// Names returns all profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Override returns a copy of p with quality and/or speed replaced. The
// result is always clamped.
func (p Profile) Override(quality, speed *int) Profile {
	if quality != nil {
		p.Params.Quality = *quality
	}
	if speed != nil {
		p.Params.Speed = *speed
	}
	p.Params = p.Params.Clamped()
	return p
}
