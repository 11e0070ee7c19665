// Package anchor derives the stable reference frame every placement
// computation hangs off. A raw head pose wobbles in all six degrees of
// freedom; the anchor keeps the position but flattens the gaze direction
// into the horizontal plane, so content stays level when the user looks
// up or down.
package anchor

import (
	"time"

	"github.com/holoscene/holoscene/internal/core/geom"
)

// DefaultMaxAge is how long an anchor stays valid before callers should
// request recomputation.
const DefaultMaxAge = 60 * time.Second

// flattenEpsilon guards against normalizing a near-zero flattened forward
// when the user looks straight up or down.
const flattenEpsilon = 1e-3

// backward is the canonical rest direction of a camera: the pose
// orientation rotates it into the actual gaze direction.
var backward = geom.Vec3{Z: -1}

// DefaultForward is substituted when the flattened gaze direction
// degenerates (user looking straight up/down with no horizontal
// component to normalize).
var DefaultForward = geom.Vec3{Z: -1}

// Pose is a camera-like world pose as supplied by the XR provider.
type Pose struct {
	Position    geom.Vec3
	Orientation geom.Quat
}

// Anchor is the computed reference frame: a position plus an orthonormal
// horizontal basis. Forward always satisfies Forward.Y == 0 and
// |Forward| == 1. Read-only to everything outside this package.
type Anchor struct {
	Position  geom.Vec3
	Forward   geom.Vec3
	Right     geom.Vec3
	Up        geom.Vec3
	RawY      float64 // unflattened camera height, kept for eye-level placement
	Timestamp time.Time
}

// Tracker computes and caches the current anchor. It is not safe for
// concurrent use; the render loop that owns the engine owns this too.
type Tracker struct {
	current Anchor
	valid   bool
	now     func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// ComputeAnchor derives a fresh anchor from pose and stores it as the
// tracker's current one. floorY pins the anchor's vertical origin so
// zone heights are measured from the floor rather than the headset.
func (t *Tracker) ComputeAnchor(pose Pose, floorY float64) Anchor {
	forward := pose.Orientation.RotateVec(backward).Flatten()
	if forward.Length() < flattenEpsilon {
		forward = DefaultForward
	} else {
		forward = forward.Normalize()
	}

	a := Anchor{
		Position:  geom.Vec3{X: pose.Position.X, Y: floorY, Z: pose.Position.Z},
		Forward:   forward,
		Right:     forward.Cross(geom.Up).Normalize(),
		Up:        geom.Up,
		RawY:      pose.Position.Y,
		Timestamp: t.now(),
	}
	t.current = a
	t.valid = true
	return a
}

// Current returns the cached anchor; ok is false before the first
// ComputeAnchor call.
func (t *Tracker) Current() (Anchor, bool) {
	return t.current, t.valid
}

// ShouldRecompute reports whether no anchor exists yet or the cached one
// is older than maxAge.
func (t *Tracker) ShouldRecompute(maxAge time.Duration) bool {
	if !t.valid {
		return true
	}
	return t.now().Sub(t.current.Timestamp) > maxAge
}
