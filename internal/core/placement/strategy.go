// Package placement turns an anchor and a zone configuration into
// candidate poses: one for the UI panel and one per 3D object. The
// candidates are unresolved (collision handling happens downstream),
// and every function here is a pure function of its arguments, so the
// same head pose and content always lay out identically.
package placement

import (
	"math"

	"github.com/holoscene/holoscene/internal/core/anchor"
	"github.com/holoscene/holoscene/internal/core/geom"
	"github.com/holoscene/holoscene/internal/core/zones"
)

// Strategy selects how candidate positions are distributed.
type Strategy string

const (
	StrategySingle Strategy = "single"
	StrategyArc    Strategy = "arc"
	StrategyGrid   Strategy = "grid"
)

// Layout constants. Lateral biases push assets to the viewer's right,
// opposite the UI panel which sits on the left.
const (
	maxArcSpreadDeg   = 90
	arcDepthStagger   = 0.15 // meters of extra distance per arc index
	arcLateralBias    = 0.25
	singleLateralBias = 0.3
	gridMinSpacing    = 0.3
)

// fallbackDistance places content when no anchor has been computed yet:
// a fixed spot in front of the world origin, fanned out per index so
// objects do not land on top of each other.
const fallbackDistance = 2.0

// StrategyFor picks the layout strategy from the object count: a lone
// object gets focus placement, small sets fan into an arc, larger sets
// fall back to a grid.
func StrategyFor(count int) Strategy {
	switch {
	case count <= 1:
		return StrategySingle
	case count <= 4:
		return StrategyArc
	default:
		return StrategyGrid
	}
}

// Params bundles the inputs shared by all position functions.
type Params struct {
	Zones zones.Config
	// TargetSize is the normalized asset extent; grid spacing derives
	// from it.
	TargetSize float64
}

// Candidate computes the unresolved candidate position for one object.
// hasAnchor=false is safe: a fixed default placement in world space is
// returned so the engine can run before the first pose update.
func Candidate(s Strategy, a anchor.Anchor, hasAnchor bool, p Params, index, total int) geom.Vec3 {
	if !hasAnchor {
		return fallbackPosition(p, index)
	}
	switch s {
	case StrategySingle:
		return SinglePosition(a, p, index, total)
	case StrategyGrid:
		return GridPosition(a, p, index, total)
	default:
		return ArcPosition(a, p, index, total)
	}
}

// SinglePosition puts a lone object at the near edge of the asset zone
// with a small lateral bias away from the UI panel.
func SinglePosition(a anchor.Anchor, p Params, _, _ int) geom.Vec3 {
	pos := a.Position.
		Add(a.Forward.Scale(p.Zones.Asset.MinDistance)).
		Add(a.Right.Scale(singleLateralBias))
	pos.Y = a.Position.Y + p.Zones.Asset.VerticalOffset
	return pos
}

// ArcPosition fans total objects across the asset zone's horizontal
// spread (clamped to 90 degrees), symmetric about the forward axis.
// Distance grows slightly with index so nearby objects do not stack
// visually.
func ArcPosition(a anchor.Anchor, p Params, index, total int) geom.Vec3 {
	spread := math.Min(p.Zones.Asset.HorizontalSpreadDeg, maxArcSpreadDeg) * math.Pi / 180

	angle := 0.0
	if total > 1 {
		start := -spread / 2
		angle = start + float64(index)*(spread/float64(total-1))
	}

	distance := p.Zones.Asset.MinDistance + float64(index)*arcDepthStagger
	dir := a.Forward.RotateY(angle)

	pos := a.Position.
		Add(dir.Scale(distance)).
		Add(a.Right.Scale(arcLateralBias))
	pos.Y = a.Position.Y + p.Zones.Asset.VerticalOffset
	return pos
}

// GridPosition arranges objects in two rows, columns centered on the
// forward axis. Spacing derives from the normalized asset size plus a
// fixed gap; rows step away from the user.
func GridPosition(a anchor.Anchor, p Params, index, total int) geom.Vec3 {
	cols := (total + 1) / 2
	if cols < 1 {
		cols = 1
	}
	row := index / cols
	col := index % cols

	spacing := p.TargetSize + gridMinSpacing
	lateral := (float64(col) - float64(cols-1)/2) * spacing
	distance := p.Zones.Asset.MinDistance + float64(row)*spacing

	pos := a.Position.
		Add(a.Forward.Scale(distance)).
		Add(a.Right.Scale(lateral))
	pos.Y = a.Position.Y + p.Zones.Asset.VerticalOffset
	return pos
}

// RotationToward yields the look-at rotation for an object at pos
// facing the anchor (the user).
func RotationToward(a anchor.Anchor, pos geom.Vec3) geom.Euler {
	return geom.Euler{Yaw: geom.YawTo(pos, a.Position)}
}

func fallbackPosition(p Params, index int) geom.Vec3 {
	return geom.Vec3{
		X: float64(index) * (p.TargetSize + gridMinSpacing),
		Y: p.Zones.Asset.VerticalOffset,
		Z: -fallbackDistance,
	}
}
