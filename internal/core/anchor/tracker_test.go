package anchor

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holoscene/holoscene/internal/core/geom"
)

func TestComputeAnchor_FlattensForward(t *testing.T) {
	tests := []struct {
		name        string
		orientation geom.Quat
		wantForward geom.Vec3
	}{
		{
			name:        "Identity pose faces -Z",
			orientation: geom.QuatIdentity,
			wantForward: geom.Vec3{Z: -1},
		},
		{
			name:        "Quarter turn left",
			orientation: geom.QuatFromAxisAngle(geom.Up, math.Pi/2),
			wantForward: geom.Vec3{X: -1},
		},
		{
			name:        "Looking 45 degrees down keeps horizontal heading",
			orientation: geom.QuatFromAxisAngle(geom.Vec3{X: 1}, -math.Pi/4),
			wantForward: geom.Vec3{Z: -1},
		},
		{
			name:        "Looking straight down substitutes default forward",
			orientation: geom.QuatFromAxisAngle(geom.Vec3{X: 1}, -math.Pi/2),
			wantForward: DefaultForward,
		},
		{
			name:        "Looking straight up substitutes default forward",
			orientation: geom.QuatFromAxisAngle(geom.Vec3{X: 1}, math.Pi/2),
			wantForward: DefaultForward,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			a := tr.ComputeAnchor(Pose{Position: geom.Vec3{Y: 1.7}, Orientation: tt.orientation}, 0)

			assert.True(t, a.Forward.ApproxEqual(tt.wantForward), "forward %+v want %+v", a.Forward, tt.wantForward)
			assert.InDelta(t, 0, a.Forward.Y, geom.Epsilon, "forward must stay horizontal")
			assert.InDelta(t, 1, a.Forward.Length(), geom.Epsilon, "forward must be unit length")
		})
	}
}

func TestComputeAnchor_Basis(t *testing.T) {
	tr := NewTracker()
	a := tr.ComputeAnchor(Pose{
		Position:    geom.Vec3{X: 2, Y: 1.6, Z: -3},
		Orientation: geom.QuatFromAxisAngle(geom.Up, 0.7),
	}, 0)

	assert.InDelta(t, 0, a.Forward.Dot(a.Right), geom.Epsilon, "forward and right must be orthogonal")
	assert.InDelta(t, 1, a.Right.Length(), geom.Epsilon)
	assert.InDelta(t, 0, a.Right.Y, geom.Epsilon)
	assert.Equal(t, geom.Up, a.Up)

	// Position keeps the pose's horizontal location, pinned to the floor;
	// the camera height survives in RawY.
	assert.InDelta(t, 2, a.Position.X, geom.Epsilon)
	assert.InDelta(t, -3, a.Position.Z, geom.Epsilon)
	assert.InDelta(t, 0, a.Position.Y, geom.Epsilon)
	assert.InDelta(t, 1.6, a.RawY, geom.Epsilon)
}

func TestTracker_Staleness(t *testing.T) {
	tr := NewTracker()

	_, ok := tr.Current()
	assert.False(t, ok)
	assert.True(t, tr.ShouldRecompute(DefaultMaxAge), "no anchor yet")

	now := time.Unix(1000, 0)
	tr.now = func() time.Time { return now }

	tr.ComputeAnchor(Pose{Orientation: geom.QuatIdentity}, 0)
	cur, ok := tr.Current()
	require.True(t, ok)
	assert.Equal(t, now, cur.Timestamp)
	assert.False(t, tr.ShouldRecompute(DefaultMaxAge))

	now = now.Add(59 * time.Second)
	assert.False(t, tr.ShouldRecompute(DefaultMaxAge))

	now = now.Add(2 * time.Second)
	assert.True(t, tr.ShouldRecompute(DefaultMaxAge))
}
