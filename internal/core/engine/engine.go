// Package engine orchestrates a layout pass: normalize and scale each
// object, compute its candidate pose from the current anchor, resolve
// collisions against everything placed so far, and record the result.
// One Engine instance owns one layout context; construct it explicitly
// and keep all calls on the goroutine that owns the render loop.
package engine

import (
	"time"

	"github.com/holoscene/holoscene/internal/core/anchor"
	"github.com/holoscene/holoscene/internal/core/collision"
	"github.com/holoscene/holoscene/internal/core/geom"
	"github.com/holoscene/holoscene/internal/core/observability/log"
	"github.com/holoscene/holoscene/internal/core/placement"
	"github.com/holoscene/holoscene/internal/core/scene"
	"github.com/holoscene/holoscene/internal/core/zones"
)

// DefaultTargetSize is the uniform extent objects are scaled to before
// placement.
const DefaultTargetSize = 1.0

// PlacedAsset records one object's resolved placement. Object is a
// non-owning back-reference into the caller's scene graph; the original
// transform fields are what ResetAsset restores.
type PlacedAsset struct {
	Object   scene.Object
	Collider geom.AABB

	OriginalPosition geom.Vec3
	OriginalRotation geom.Euler
	OriginalScale    float64

	Index    int
	Grabbed  bool
	Strategy placement.Strategy
}

// Placement is the immutable resolved output for one object.
type Placement struct {
	Position geom.Vec3
	Rotation geom.Euler
	Scale    float64
	Strategy placement.Strategy
}

// Engine holds the mutable layout state: the current placed assets and
// the standing UI collider. Not safe for concurrent use.
type Engine struct {
	tracker    *anchor.Tracker
	cfg        zones.Config
	comfort    placement.ComfortParams
	normalizer *scene.Normalizer
	resolver   *collision.Resolver
	logger     log.Log

	targetSize  float64
	maxAttempts int
	anchorAge   time.Duration

	placed     []PlacedAsset
	uiCollider geom.AABB

	lastSignature uint64
	haveSignature bool
}

// Option configures an Engine at construction time.
type Option func(*Engine)

func WithLogger(l log.Log) Option {
	return func(e *Engine) { e.logger = l }
}

func WithZones(cfg zones.Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

func WithTargetSize(size float64) Option {
	return func(e *Engine) { e.targetSize = size }
}

func WithMaxAttempts(n int) Option {
	return func(e *Engine) { e.maxAttempts = n }
}

func WithComfort(p placement.ComfortParams) Option {
	return func(e *Engine) { e.comfort = p }
}

// WithAnchorMaxAge overrides how long a computed anchor stays fresh.
func WithAnchorMaxAge(age time.Duration) Option {
	return func(e *Engine) { e.anchorAge = age }
}

func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		tracker:    anchor.NewTracker(),
		cfg:        zones.Default(),
		comfort:    placement.DefaultComfort(),
		logger:     log.Nop(),
		targetSize: DefaultTargetSize,
		anchorAge:  anchor.DefaultMaxAge,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	e.normalizer = scene.NewNormalizer(e.logger)
	e.resolver = collision.NewResolver(e.maxAttempts, e.logger)
	return e, nil
}

// UpdatePose refreshes the anchor from a new head pose.
func (e *Engine) UpdatePose(pose anchor.Pose, floorY float64) anchor.Anchor {
	a := e.tracker.ComputeAnchor(pose, floorY)
	e.logger.Debug("anchor updated",
		log.Float64("x", a.Position.X),
		log.Float64("z", a.Position.Z),
		log.Float64("forward_x", a.Forward.X),
		log.Float64("forward_z", a.Forward.Z),
	)
	return a
}

// AnchorStale reports whether the next layout should be preceded by a
// pose update.
func (e *Engine) AnchorStale() bool {
	return e.tracker.ShouldRecompute(e.anchorAge)
}

// LayoutUIAnchor computes the UI panel placement for the current anchor
// and retains its collider as the standing obstacle for asset
// placement. Safe before the first pose update: the fallback anchor
// faces -Z from the world origin.
func (e *Engine) LayoutUIAnchor() placement.UIPlacement {
	a := e.currentAnchor()
	ui := placement.LayoutUIAnchor(a, e.cfg)
	e.uiCollider = ui.Collider
	e.logger.Debug("ui panel placed",
		log.Float64("x", ui.Position.X),
		log.Float64("y", ui.Position.Y),
		log.Float64("z", ui.Position.Z),
	)
	return ui
}

// LayoutAssets runs a full placement pass over objects, in input order.
// Previous placed-asset records are discarded wholesale; the UI
// collider is left as-is (call LayoutUIAnchor first to refresh it).
// Each object's collision test sees the UI collider plus every collider
// placed earlier in this pass, which makes the outcome order-dependent
// but deterministic.
func (e *Engine) LayoutAssets(objects []scene.Object) []PlacedAsset {
	e.placed = e.placed[:0]
	if len(objects) == 0 {
		return nil
	}

	a, hasAnchor := e.tracker.Current()
	strategy := placement.StrategyFor(len(objects))
	params := placement.Params{Zones: e.cfg, TargetSize: e.targetSize}

	e.logger.Debug("layout pass",
		log.Int("objects", len(objects)),
		log.String("strategy", string(strategy)),
		log.Bool("has_anchor", hasAnchor),
	)

	colliders := make([]geom.AABB, 0, len(objects))
	for i, obj := range objects {
		original := PlacedAsset{
			Object:           obj,
			OriginalPosition: obj.Position(),
			OriginalRotation: obj.Rotation(),
			OriginalScale:    obj.Scale(),
			Index:            i,
			Strategy:         strategy,
		}

		e.normalizer.Normalize(obj)
		e.normalizer.FitToSize(obj, e.targetSize)

		candidate := placement.Candidate(strategy, a, hasAnchor, params, i, len(objects))
		obj.SetPosition(candidate)
		obj.UpdateWorldMatrix()
		box := obj.WorldBounds()

		res := e.resolver.Resolve(box, e.resolveAnchor(a, hasAnchor), e.uiCollider, colliders)
		if !res.Position.ApproxEqual(box.Center()) {
			obj.SetPosition(candidate.Add(res.Position.Sub(box.Center())))
			obj.UpdateWorldMatrix()
			box = obj.WorldBounds()
		}
		obj.SetRotation(e.rotationFor(a, hasAnchor, obj.Position()))

		if !res.Resolved {
			e.logger.Warn("placing object with unresolved overlap",
				log.String("object", obj.Name()),
				log.Int("index", i),
				log.Int("attempts", res.Attempts),
			)
		}
		if hasAnchor && !e.comfort.IsInComfortZone(a, obj.Position()) {
			e.logger.Debug("object outside comfort zone",
				log.String("object", obj.Name()),
				log.Int("index", i),
			)
		}

		original.Collider = box
		colliders = append(colliders, box)
		e.placed = append(e.placed, original)
	}

	return e.PlacedAssets()
}

// CheckCollision reports whether box intersects the UI collider or any
// currently placed collider. Public query for the interactive layer.
func (e *Engine) CheckCollision(box geom.AABB) bool {
	return e.resolver.Check(box, e.uiCollider, e.placedColliders(nil))
}

// ConstrainMovement guards interactive dragging: it returns
// proposedPosition when the object's collider would stay free and
// inside the interaction zone there, and the object's current position
// otherwise. No sliding: a rejected move snaps back wholesale.
func (e *Engine) ConstrainMovement(obj scene.Object, proposedPosition geom.Vec3) geom.Vec3 {
	idx := e.indexOf(obj)

	current := obj.Position()
	box := obj.WorldBounds().Translate(proposedPosition.Sub(current))

	if !e.inInteractionZone(proposedPosition) {
		e.logger.Debug("movement rejected: outside interaction zone",
			log.String("object", obj.Name()),
		)
		return current
	}
	if e.resolver.Check(box, e.uiCollider, e.placedColliders(&idx)) {
		e.logger.Debug("movement rejected: collision",
			log.String("object", obj.Name()),
		)
		return current
	}

	if idx >= 0 {
		e.placed[idx].Collider = box
	}
	return proposedPosition
}

// SetGrabbed flags a placed asset as held by the user. Grabbed assets
// keep their collider updated through ConstrainMovement.
func (e *Engine) SetGrabbed(index int, grabbed bool) {
	if index < 0 || index >= len(e.placed) {
		return
	}
	e.placed[index].Grabbed = grabbed
}

// ResetAsset restores one object's transform to the exact values
// captured when it was placed, and recomputes its collider.
func (e *Engine) ResetAsset(index int) {
	if index < 0 || index >= len(e.placed) {
		return
	}
	p := &e.placed[index]
	p.Object.SetPosition(p.OriginalPosition)
	p.Object.SetRotation(p.OriginalRotation)
	p.Object.SetScale(p.OriginalScale)
	p.Object.UpdateWorldMatrix()
	p.Collider = p.Object.WorldBounds()
	p.Grabbed = false
}

// ResetAllAssets restores every placed object.
func (e *Engine) ResetAllAssets() {
	for i := range e.placed {
		e.ResetAsset(i)
	}
}

// Placements summarizes the current pass as immutable resolved outputs,
// one per placed object in placement order.
func (e *Engine) Placements() []Placement {
	out := make([]Placement, len(e.placed))
	for i := range e.placed {
		p := &e.placed[i]
		out[i] = Placement{
			Position: p.Object.Position(),
			Rotation: p.Object.Rotation(),
			Scale:    p.Object.Scale(),
			Strategy: p.Strategy,
		}
	}
	return out
}

// PlacedAssets returns a copy of the current placed-asset records.
func (e *Engine) PlacedAssets() []PlacedAsset {
	out := make([]PlacedAsset, len(e.placed))
	copy(out, e.placed)
	return out
}

// UICollider exposes the standing UI obstacle, zero-valued before the
// first LayoutUIAnchor call.
func (e *Engine) UICollider() geom.AABB {
	return e.uiCollider
}

// Comfort exposes the advisory viewing envelope for the current config.
func (e *Engine) Comfort() placement.ComfortParams {
	return e.comfort
}

// currentAnchor returns the tracked anchor, or the documented fallback
// frame (world origin facing -Z) before the first pose update.
func (e *Engine) currentAnchor() anchor.Anchor {
	if a, ok := e.tracker.Current(); ok {
		return a
	}
	return fallbackAnchor()
}

func (e *Engine) resolveAnchor(a anchor.Anchor, hasAnchor bool) anchor.Anchor {
	if hasAnchor {
		return a
	}
	return fallbackAnchor()
}

func (e *Engine) rotationFor(a anchor.Anchor, hasAnchor bool, pos geom.Vec3) geom.Euler {
	if !hasAnchor {
		a = fallbackAnchor()
	}
	return placement.RotationToward(a, pos)
}

func fallbackAnchor() anchor.Anchor {
	return anchor.Anchor{
		Forward: anchor.DefaultForward,
		Right:   anchor.DefaultForward.Cross(geom.Up).Normalize(),
		Up:      geom.Up,
	}
}

func (e *Engine) inInteractionZone(pos geom.Vec3) bool {
	iz := e.cfg.Interaction
	if pos.Y < iz.FloorY || pos.Y > iz.CeilingY {
		return false
	}
	a := e.currentAnchor()
	dist := a.Position.HorizontalDistance(pos)
	return dist >= iz.MinDistance && dist <= iz.MaxDistance
}

// placedColliders gathers the current collider list, skipping the entry
// at *exclude when given (an object must not collide with itself while
// dragged).
func (e *Engine) placedColliders(exclude *int) []geom.AABB {
	out := make([]geom.AABB, 0, len(e.placed))
	for i := range e.placed {
		if exclude != nil && i == *exclude {
			continue
		}
		out = append(out, e.placed[i].Collider)
	}
	return out
}

func (e *Engine) indexOf(obj scene.Object) int {
	for i := range e.placed {
		if e.placed[i].Object.ID() == obj.ID() {
			return i
		}
	}
	return -1
}
