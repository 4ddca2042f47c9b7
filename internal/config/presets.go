package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/san-kum/springsim/internal/dynamo"
)

type Preset struct {
	Stiffness float64
	Damping   float64
	Mass      float64
}

var Presets = map[string]Preset{
	"default":  {Stiffness: 170, Damping: 26, Mass: 1},
	"gentle":   {Stiffness: 120, Damping: 14, Mass: 1},
	"wobbly":   {Stiffness: 180, Damping: 12, Mass: 1},
	"stiff":    {Stiffness: 210, Damping: 20, Mass: 1},
	"slow":     {Stiffness: 280, Damping: 60, Mass: 1},
	"molasses": {Stiffness: 280, Damping: 120, Mass: 1},
}

func GetPreset(name string) (Preset, error) {
	p, ok := Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", dynamo.ErrUnknownPreset, name)
	}
	return p, nil
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	return slices.Sorted(maps.Keys(Presets))
}
