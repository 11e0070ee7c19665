package server

import (
	"encoding/json"
	"math"

	"github.com/google/uuid"

	"github.com/holoscene/holoscene/internal/core/anchor"
	"github.com/holoscene/holoscene/internal/core/engine"
	"github.com/holoscene/holoscene/internal/core/geom"
	"github.com/holoscene/holoscene/internal/core/observability/log"
	"github.com/holoscene/holoscene/internal/core/scene"
	"github.com/holoscene/holoscene/internal/core/zones"
)

// Session owns one engine instance and the scene nodes built from the
// client's layout requests. All message handling for a session runs on
// the single goroutine reading its connection, which is exactly the
// external serialization the engine requires.
type Session struct {
	id     uuid.UUID
	engine *engine.Engine
	logger log.Log
	floorY float64

	objects []scene.Object
	uiPose  geom.Vec3
	uiYaw   float64
}

func NewSession(cfg Config, logger log.Log) (*Session, error) {
	id := uuid.New()
	eng, err := engine.New(
		engine.WithZones(zones.Default().Merge(cfg.Zones)),
		engine.WithTargetSize(cfg.TargetSize),
		engine.WithLogger(logger.With(log.String("session", id.String()))),
	)
	if err != nil {
		return nil, err
	}
	return &Session{
		id:     id,
		engine: eng,
		logger: logger.With(log.String("session", id.String())),
		floorY: cfg.FloorY,
	}, nil
}

func (s *Session) ID() uuid.UUID { return s.id }

// Handle dispatches one client message and returns the encoded reply,
// or nil when the message requires none (an unchanged pose).
func (s *Session) Handle(data []byte) ([]byte, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, ErrInvalidMessage
	}

	switch env.Type {
	case TypePose:
		return s.handlePose(env.Payload)
	case TypeLayout:
		return s.handleLayout(env.Payload)
	case TypeReset:
		return s.handleReset(env.Payload)
	default:
		return nil, ErrUnknownMessageType
	}
}

func (s *Session) handlePose(payload []byte) ([]byte, error) {
	var msg PoseMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, ErrInvalidMessage
	}

	s.engine.UpdatePose(anchor.Pose{
		Position: geom.Vec3{X: msg.Position[0], Y: msg.Position[1], Z: msg.Position[2]},
		Orientation: geom.Quat{
			X: msg.Orientation[0], Y: msg.Orientation[1],
			Z: msg.Orientation[2], W: msg.Orientation[3],
		},
	}, s.floorY)

	ui := s.engine.LayoutUIAnchor()
	s.uiPose = ui.Position
	s.uiYaw = ui.Rotation.Yaw * 180 / math.Pi

	if len(s.objects) == 0 {
		return nil, nil
	}
	placed, ran := s.engine.LayoutAssetsIfChanged(s.objects)
	if !ran {
		return nil, nil
	}
	return encode(TypeSnapshot, snapshotFrom(s.uiPose, s.uiYaw, placed))
}

func (s *Session) handleLayout(payload []byte) ([]byte, error) {
	var msg LayoutMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, ErrInvalidMessage
	}

	s.objects = s.objects[:0]
	for _, spec := range msg.Objects {
		bounds := geom.NewAABB(geom.Zero, geom.Vec3{
			X: spec.Extents[0], Y: spec.Extents[1], Z: spec.Extents[2],
		})
		s.objects = append(s.objects, scene.NewNode(spec.Name, bounds))
	}

	placed, _ := s.engine.LayoutAssetsIfChanged(s.objects)
	s.logger.Info("layout pass",
		log.Int("objects", len(s.objects)),
	)
	return encode(TypeSnapshot, snapshotFrom(s.uiPose, s.uiYaw, placed))
}

func (s *Session) handleReset(payload []byte) ([]byte, error) {
	var msg ResetMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, ErrInvalidMessage
	}

	if msg.Index < 0 {
		s.engine.ResetAllAssets()
	} else {
		s.engine.ResetAsset(msg.Index)
	}
	return encode(TypeSnapshot, snapshotFrom(s.uiPose, s.uiYaw, s.engine.PlacedAssets()))
}
