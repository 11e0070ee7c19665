package placement

import (
	"math"

	"github.com/holoscene/holoscene/internal/core/anchor"
	"github.com/holoscene/holoscene/internal/core/geom"
	"github.com/holoscene/holoscene/internal/core/zones"
)

const (
	// uiLateralOffset biases the panel to the viewer's left so it
	// frames, rather than blocks, the content ahead.
	uiLateralOffset = -0.8
	// uiTiltRad is a slight backward pitch for readability.
	uiTiltRad = -5 * math.Pi / 180
	// uiAssumedHeight is the collider height. The panel's rendered
	// height depends on its content, which the engine cannot see, so
	// the collider assumes a fixed envelope.
	uiAssumedHeight = 0.9
)

// UIPlacement is the resolved pose and collision volume of the lesson
// control panel.
type UIPlacement struct {
	Position geom.Vec3
	Rotation geom.Euler
	Collider geom.AABB
}

// LayoutUIAnchor computes where the UI panel goes for the given anchor:
// straight ahead at the configured distance, offset to the left, at eye
// height, yawed to face the user with a slight backward tilt. The
// returned collider is the single standing obstacle every asset
// placement must avoid.
func LayoutUIAnchor(a anchor.Anchor, cfg zones.Config) UIPlacement {
	pos := a.Position.
		Add(a.Forward.Scale(cfg.UI.Distance)).
		Add(a.Right.Scale(uiLateralOffset))
	pos.Y = a.Position.Y + cfg.UI.Height

	return UIPlacement{
		Position: pos,
		Rotation: geom.Euler{
			Yaw:   geom.YawTo(pos, a.Position),
			Pitch: uiTiltRad,
		},
		Collider: geom.FromCenterSize(pos, geom.Vec3{
			X: cfg.UI.Width,
			Y: uiAssumedHeight,
			Z: cfg.UI.Depth,
		}),
	}
}
