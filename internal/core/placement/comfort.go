package placement

import (
	"math"

	"github.com/holoscene/holoscene/internal/core/anchor"
	"github.com/holoscene/holoscene/internal/core/geom"
)

// ComfortParams is the advisory viewing envelope for a headset wearer:
// content inside it is ergonomic to look at, content outside merely
// gets flagged. Comfort is independent of collision resolution and
// never blocks a placement.
type ComfortParams struct {
	MinDistance float64
	MaxDistance float64
	MaxYawDeg   float64 // half-angle off the forward axis
}

// DefaultComfort matches typical headset guidance: nothing closer than
// half a meter, nothing past four meters, within a 55 degree half-FOV.
func DefaultComfort() ComfortParams {
	return ComfortParams{
		MinDistance: 0.5,
		MaxDistance: 4.0,
		MaxYawDeg:   55,
	}
}

// ComfortFromSession derives the envelope from an XR session's viewing
// parameters when the provider exposes them.
func ComfortFromSession(fovDeg, near, far float64) ComfortParams {
	p := DefaultComfort()
	if fovDeg > 0 {
		p.MaxYawDeg = fovDeg / 2
	}
	if near > 0 {
		p.MinDistance = math.Max(p.MinDistance, near)
	}
	if far > 0 {
		p.MaxDistance = math.Min(p.MaxDistance, far)
	}
	return p
}

// IsInComfortZone reports whether pos is within the distance band and
// angular spread of the anchor's forward axis.
func (p ComfortParams) IsInComfortZone(a anchor.Anchor, pos geom.Vec3) bool {
	dist := a.Position.HorizontalDistance(pos)
	if dist < p.MinDistance || dist > p.MaxDistance {
		return false
	}
	// Epsilon keeps positions clamped exactly onto the envelope edge inside.
	return p.yawOff(a, pos) <= p.MaxYawDeg*math.Pi/180+geom.Epsilon
}

// ClampToComfortZone pulls pos back inside the envelope, preserving its
// direction from the anchor where possible.
func (p ComfortParams) ClampToComfortZone(a anchor.Anchor, pos geom.Vec3) geom.Vec3 {
	dir := pos.Sub(a.Position).Flatten()
	dist := dir.Length()
	if dist < geom.Epsilon {
		dir = a.Forward
		dist = p.MinDistance
	} else {
		dir = dir.Scale(1 / dist)
	}

	maxYaw := p.MaxYawDeg * math.Pi / 180
	if off := p.yawOff(a, pos); off > maxYaw {
		// Rotate the direction back toward forward until it sits on
		// the envelope edge.
		sign := 1.0
		if a.Forward.Cross(dir).Y < 0 {
			sign = -1
		}
		dir = a.Forward.RotateY(sign * maxYaw)
	}

	dist = math.Max(p.MinDistance, math.Min(p.MaxDistance, dist))
	out := a.Position.Add(dir.Scale(dist))
	out.Y = pos.Y
	return out
}

func (p ComfortParams) yawOff(a anchor.Anchor, pos geom.Vec3) float64 {
	dir := pos.Sub(a.Position).Flatten().Normalize()
	if dir == geom.Zero {
		return 0
	}
	dot := math.Max(-1, math.Min(1, a.Forward.Dot(dir)))
	return math.Acos(dot)
}
