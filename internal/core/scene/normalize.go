package scene

import (
	"github.com/holoscene/holoscene/internal/core/geom"
	"github.com/holoscene/holoscene/internal/core/observability/log"
)

// Normalizer re-pivots and scales objects before placement. Both steps
// mutate the object's local geometry or scale, so bounds must be
// recomputed after each one; Normalize therefore always runs before
// FitToSize on a given object.
type Normalizer struct {
	logger log.Log
}

func NewNormalizer(logger log.Log) *Normalizer {
	if logger == nil {
		logger = log.Nop()
	}
	return &Normalizer{logger: logger}
}

// Normalize shifts the object's geometry so the horizontal center of
// its bounding box sits at local X/Z origin and its lowest point at
// Y=0. Returns the recomputed world bounds.
func (n *Normalizer) Normalize(obj Object) geom.AABB {
	b := obj.LocalBounds()
	c := b.Center()
	delta := geom.Vec3{X: -c.X, Y: -b.Min.Y, Z: -c.Z}
	obj.OffsetGeometry(delta)
	obj.UpdateWorldMatrix()

	out := obj.WorldBounds()
	n.logger.Debug("normalized object",
		log.String("object", obj.Name()),
		log.Float64("shift_x", delta.X),
		log.Float64("shift_y", delta.Y),
		log.Float64("shift_z", delta.Z),
	)
	return out
}

// FitToSize applies a uniform scale so the largest extent of the
// object's bounding box equals targetSize, and returns the factor
// applied on top of the current scale. A degenerate (zero-extent) box
// is a no-op with factor 1 rather than a division by zero.
func (n *Normalizer) FitToSize(obj Object, targetSize float64) float64 {
	b := obj.WorldBounds()
	maxExtent := b.MaxExtent()
	if maxExtent < geom.Epsilon {
		n.logger.Debug("skipping fit for zero-extent object",
			log.String("object", obj.Name()),
		)
		return 1
	}

	factor := targetSize / maxExtent
	obj.SetScale(obj.Scale() * factor)
	obj.UpdateWorldMatrix()

	n.logger.Debug("fitted object to size",
		log.String("object", obj.Name()),
		log.Float64("target", targetSize),
		log.Float64("factor", factor),
	)
	return factor
}
