package server

import (
	"encoding/json"
	"math"

	"github.com/holoscene/holoscene/internal/core/engine"
	"github.com/holoscene/holoscene/internal/core/geom"
)

// Message types on the pose stream. Clients send poses and layout
// requests; the server answers with placement snapshots.
const (
	TypePose     = "pose"
	TypeLayout   = "layout"
	TypeReset    = "reset"
	TypeSnapshot = "snapshot"
	TypeError    = "error"
)

// Envelope wraps every message with its type so the session loop can
// dispatch before decoding the payload.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// PoseMessage is a head pose sample from the client.
type PoseMessage struct {
	Position    [3]float64 `json:"position"`
	Orientation [4]float64 `json:"orientation"` // x, y, z, w
}

// ObjectSpec describes one piece of lesson content to lay out. Extents
// are the model's raw bounding-box size before normalization.
type ObjectSpec struct {
	Name    string     `json:"name"`
	Extents [3]float64 `json:"extents"`
}

// LayoutMessage asks for a full placement pass over the given objects.
type LayoutMessage struct {
	Objects []ObjectSpec `json:"objects"`
}

// ResetMessage restores placed objects; a negative index resets all.
type ResetMessage struct {
	Index int `json:"index"`
}

// AssetPlacement is one resolved placement on the wire.
type AssetPlacement struct {
	Name     string     `json:"name"`
	Position [3]float64 `json:"position"`
	YawDeg   float64    `json:"yaw_deg"`
	Scale    float64    `json:"scale"`
	Strategy string     `json:"strategy"`
}

// SnapshotMessage is the full current layout: the UI panel pose plus
// every placed asset.
type SnapshotMessage struct {
	UIPosition [3]float64       `json:"ui_position"`
	UIYawDeg   float64          `json:"ui_yaw_deg"`
	Assets     []AssetPlacement `json:"assets"`
}

// ErrorMessage reports a rejected client message without dropping the
// session.
type ErrorMessage struct {
	Reason string `json:"reason"`
}

func encode(msgType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

func vec(v geom.Vec3) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

func snapshotFrom(ui geom.Vec3, uiYawDeg float64, placed []engine.PlacedAsset) SnapshotMessage {
	snap := SnapshotMessage{
		UIPosition: vec(ui),
		UIYawDeg:   uiYawDeg,
		Assets:     make([]AssetPlacement, 0, len(placed)),
	}
	for _, p := range placed {
		snap.Assets = append(snap.Assets, AssetPlacement{
			Name:     p.Object.Name(),
			Position: vec(p.Object.Position()),
			YawDeg:   p.Object.Rotation().Yaw * 180 / math.Pi,
			Scale:    p.Object.Scale(),
			Strategy: string(p.Strategy),
		})
	}
	return snap
}
