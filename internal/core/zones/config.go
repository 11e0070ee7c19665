// Package zones holds the static geometric parameters describing the
// three spatial regions of an immersive lesson view: the UI zone in
// front of the user, the asset zone where 3D content is laid out, and
// the interaction zone bounding what the user can reach or drag.
package zones

import "errors"

var (
	ErrInvalidDistanceRange = errors.New("zone min distance exceeds max distance")
	ErrInvalidHeightRange   = errors.New("zone floor exceeds ceiling")
	ErrInvalidSpread        = errors.New("horizontal spread must be positive")
)

// UIZone positions the lesson control panel.
type UIZone struct {
	Distance float64 `yaml:"distance"` // meters in front of the user
	Height   float64 `yaml:"height"`   // meters above the floor (eye level)
	Width    float64 `yaml:"width"`
	Depth    float64 `yaml:"depth"`
}

// AssetZone bounds where 3D content may be placed.
type AssetZone struct {
	MinDistance         float64 `yaml:"min_distance"`
	MaxDistance         float64 `yaml:"max_distance"`
	HorizontalSpreadDeg float64 `yaml:"horizontal_spread_deg"`
	VerticalOffset      float64 `yaml:"vertical_offset"` // meters above the floor
}

// InteractionZone bounds where grabbed content may be dragged.
type InteractionZone struct {
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	FloorY      float64 `yaml:"floor_y"`
	CeilingY    float64 `yaml:"ceiling_y"`
}

// Config is the full zone description. Treat values as immutable after
// construction; the engine takes a copy.
type Config struct {
	UI          UIZone          `yaml:"ui"`
	Asset       AssetZone       `yaml:"asset"`
	Interaction InteractionZone `yaml:"interaction"`
}

// Default returns the stock zone geometry: UI panel 2 m out at eye
// level, assets between 1.8 m and 3.5 m across a 120 degree spread,
// interaction capped at 4 m and 3 m ceiling.
func Default() Config {
	return Config{
		UI: UIZone{
			Distance: 2.0,
			Height:   1.6,
			Width:    1.2,
			Depth:    0.1,
		},
		Asset: AssetZone{
			MinDistance:         1.8,
			MaxDistance:         3.5,
			HorizontalSpreadDeg: 120,
			VerticalOffset:      1.0,
		},
		Interaction: InteractionZone{
			MinDistance: 0.5,
			MaxDistance: 4.0,
			FloorY:      0,
			CeilingY:    3.0,
		},
	}
}

// Overrides carries partial zone settings. Nil fields keep defaults.
type Overrides struct {
	UI          *UIZone          `yaml:"ui,omitempty"`
	Asset       *AssetZone       `yaml:"asset,omitempty"`
	Interaction *InteractionZone `yaml:"interaction,omitempty"`
}

// Merge applies the overrides on top of c, zone by zone, and returns the
// result. Override granularity is a whole zone: partial zone structs are
// not merged field-wise.
func (c Config) Merge(o Overrides) Config {
	if o.UI != nil {
		c.UI = *o.UI
	}
	if o.Asset != nil {
		c.Asset = *o.Asset
	}
	if o.Interaction != nil {
		c.Interaction = *o.Interaction
	}
	return c
}

// Validate checks range ordering. Geometry code assumes a valid config;
// the engine constructor rejects invalid ones up front.
func (c Config) Validate() error {
	if c.Asset.MinDistance > c.Asset.MaxDistance {
		return ErrInvalidDistanceRange
	}
	if c.Interaction.MinDistance > c.Interaction.MaxDistance {
		return ErrInvalidDistanceRange
	}
	if c.Interaction.FloorY > c.Interaction.CeilingY {
		return ErrInvalidHeightRange
	}
	if c.Asset.HorizontalSpreadDeg <= 0 {
		return ErrInvalidSpread
	}
	return nil
}
