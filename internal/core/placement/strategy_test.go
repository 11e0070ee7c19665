package placement

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holoscene/holoscene/internal/core/anchor"
	"github.com/holoscene/holoscene/internal/core/geom"
	"github.com/holoscene/holoscene/internal/core/zones"
)

func originAnchor() anchor.Anchor {
	return anchor.Anchor{
		Position: geom.Zero,
		Forward:  geom.Vec3{Z: -1},
		Right:    geom.Vec3{X: 1},
		Up:       geom.Up,
	}
}

func defaultParams() Params {
	return Params{Zones: zones.Default(), TargetSize: 1.0}
}

func TestStrategyFor(t *testing.T) {
	tests := []struct {
		count int
		want  Strategy
	}{
		{0, StrategySingle},
		{1, StrategySingle},
		{2, StrategyArc},
		{4, StrategyArc},
		{5, StrategyGrid},
		{12, StrategyGrid},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StrategyFor(tt.count), "count=%d", tt.count)
	}
}

func TestArcPosition_Angles(t *testing.T) {
	a := originAnchor()
	p := defaultParams()
	p.Zones.Asset.HorizontalSpreadDeg = 90

	// With four objects and a 90 degree spread, candidate directions sit
	// at -45, -15, +15, +45 degrees off forward (before lateral bias).
	want := []float64{-45, -15, 15, 45}
	for i, deg := range want {
		pos := ArcPosition(a, p, i, 4)

		// Strip the constant lateral bias, then measure the angle of the
		// remaining direction against forward.
		dir := pos.Sub(a.Right.Scale(arcLateralBias))
		dir.Y = 0
		dir = dir.Normalize()

		got := math.Atan2(-dir.X, -dir.Z) * 180 / math.Pi
		assert.InDelta(t, deg, got, 0.01, "index %d", i)
	}
}

func TestArcPosition_SpreadClamped(t *testing.T) {
	a := originAnchor()
	p := defaultParams() // default spread is 120, clamp is 90

	first := ArcPosition(a, p, 0, 2)
	dir := first.Sub(a.Right.Scale(arcLateralBias))
	dir.Y = 0
	got := math.Atan2(-dir.X, -dir.Z) * 180 / math.Pi
	assert.InDelta(t, -45, got, 0.01, "first object sits at -(clamped spread)/2")
}

func TestArcPosition_DepthStagger(t *testing.T) {
	a := originAnchor()
	p := defaultParams()

	d0 := ArcPosition(a, p, 0, 3).Sub(a.Right.Scale(arcLateralBias)).HorizontalDistance(geom.Zero)
	d2 := ArcPosition(a, p, 2, 3).Sub(a.Right.Scale(arcLateralBias)).HorizontalDistance(geom.Zero)
	assert.Greater(t, d2, d0, "later arc indices sit farther out")
}

func TestSinglePosition(t *testing.T) {
	a := originAnchor()
	p := defaultParams()

	pos := SinglePosition(a, p, 0, 1)
	assert.InDelta(t, -p.Zones.Asset.MinDistance, pos.Z, geom.Epsilon)
	assert.InDelta(t, singleLateralBias, pos.X, geom.Epsilon, "biased opposite the UI panel")
	assert.InDelta(t, p.Zones.Asset.VerticalOffset, pos.Y, geom.Epsilon)
}

func TestGridPosition(t *testing.T) {
	a := originAnchor()
	p := defaultParams()
	total := 6 // 3 columns, 2 rows
	spacing := p.TargetSize + gridMinSpacing

	var positions []geom.Vec3
	for i := 0; i < total; i++ {
		positions = append(positions, GridPosition(a, p, i, total))
	}

	t.Run("Symmetric about forward axis", func(t *testing.T) {
		assert.InDelta(t, -spacing, positions[0].X, geom.Epsilon)
		assert.InDelta(t, 0, positions[1].X, geom.Epsilon)
		assert.InDelta(t, spacing, positions[2].X, geom.Epsilon)
	})

	t.Run("Second row steps away from the user", func(t *testing.T) {
		require.Len(t, positions, 6)
		assert.InDelta(t, positions[0].Z-spacing, positions[3].Z, geom.Epsilon)
		assert.InDelta(t, positions[0].X, positions[3].X, geom.Epsilon)
	})

	t.Run("All at the configured height", func(t *testing.T) {
		for _, pos := range positions {
			assert.InDelta(t, p.Zones.Asset.VerticalOffset, pos.Y, geom.Epsilon)
		}
	})
}

func TestCandidate_Determinism(t *testing.T) {
	a := anchor.Anchor{
		Position: geom.Vec3{X: 1.2, Z: -0.4},
		Forward:  geom.Vec3{X: 0.6, Z: -0.8},
		Right:    geom.Vec3{X: 0.8, Z: 0.6},
		Up:       geom.Up,
	}
	p := defaultParams()

	for _, s := range []Strategy{StrategySingle, StrategyArc, StrategyGrid} {
		first := Candidate(s, a, true, p, 2, 5)
		second := Candidate(s, a, true, p, 2, 5)
		assert.Equal(t, first, second, "strategy %s", s)
	}
}

func TestCandidate_NoAnchorFallback(t *testing.T) {
	p := defaultParams()

	// Safe to call before the first pose update: a fixed default world
	// position comes back, fanned out per index.
	a := Candidate(StrategyArc, anchor.Anchor{}, false, p, 0, 3)
	b := Candidate(StrategyArc, anchor.Anchor{}, false, p, 1, 3)
	assert.NotEqual(t, a, b)
	assert.InDelta(t, -fallbackDistance, a.Z, geom.Epsilon)
}

func TestRotationToward(t *testing.T) {
	a := originAnchor()

	// An object straight ahead looks back along +Z: yaw of half a turn.
	rot := RotationToward(a, geom.Vec3{Z: -2})
	assert.InDelta(t, math.Pi, math.Abs(rot.Yaw), geom.Epsilon)

	// An object on the viewer's right looks left toward the origin.
	rot = RotationToward(a, geom.Vec3{X: 2, Z: -2})
	assert.InDelta(t, 3*math.Pi/4, rot.Yaw, geom.Epsilon)
}
