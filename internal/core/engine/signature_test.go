package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holoscene/holoscene/internal/core/anchor"
	"github.com/holoscene/holoscene/internal/core/geom"
)

func TestLayoutSignature_Stable(t *testing.T) {
	e := newTestEngine(t)
	e.UpdatePose(identityPose(), 0)

	objs := cubes(3)
	assert.Equal(t, e.LayoutSignature(objs), e.LayoutSignature(objs))
}

func TestLayoutSignature_SensitiveToInputs(t *testing.T) {
	e := newTestEngine(t)
	e.UpdatePose(identityPose(), 0)
	objs := cubes(3)
	base := e.LayoutSignature(objs)

	t.Run("Head movement changes it", func(t *testing.T) {
		e.UpdatePose(anchor.Pose{
			Position:    geom.Vec3{X: 0.5, Y: 1.6},
			Orientation: geom.QuatIdentity,
		}, 0)
		assert.NotEqual(t, base, e.LayoutSignature(objs))
	})

	t.Run("Sub-centimeter jitter does not", func(t *testing.T) {
		e.UpdatePose(anchor.Pose{
			Position:    geom.Vec3{X: 0.5001, Y: 1.6},
			Orientation: geom.QuatIdentity,
		}, 0)
		moved := e.LayoutSignature(objs)
		e.UpdatePose(anchor.Pose{
			Position:    geom.Vec3{X: 0.5004, Y: 1.6},
			Orientation: geom.QuatIdentity,
		}, 0)
		assert.Equal(t, moved, e.LayoutSignature(objs))
	})

	t.Run("Different object set changes it", func(t *testing.T) {
		e.UpdatePose(identityPose(), 0)
		assert.NotEqual(t, base, e.LayoutSignature(cubes(3)), "fresh objects have fresh identities")
		assert.NotEqual(t, base, e.LayoutSignature(objs[:2]))
	})
}

func TestLayoutAssetsIfChanged(t *testing.T) {
	e := newTestEngine(t)
	e.UpdatePose(identityPose(), 0)
	e.LayoutUIAnchor()
	objs := cubes(3)

	first, ran := e.LayoutAssetsIfChanged(objs)
	require.True(t, ran, "first call always runs")
	require.Len(t, first, 3)

	second, ran := e.LayoutAssetsIfChanged(objs)
	assert.False(t, ran, "unchanged inputs skip the pass")
	assert.Len(t, second, 3)

	// The user walks somewhere else: the pass runs again.
	e.UpdatePose(anchor.Pose{
		Position:    geom.Vec3{X: 2, Y: 1.6, Z: 1},
		Orientation: geom.QuatIdentity,
	}, 0)
	_, ran = e.LayoutAssetsIfChanged(objs)
	assert.True(t, ran)
}
