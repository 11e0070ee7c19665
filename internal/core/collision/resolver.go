// Package collision turns candidate placements into non-overlapping
// ones. The resolver is a greedy, deterministic local search: it nudges
// a colliding box by fixed-magnitude pushes until it is free or the
// attempt budget runs out. It is not a physically correct solver: dense
// configurations can exhaust the budget, and callers are expected to
// tolerate the resulting overlap as degraded output.
package collision

import (
	"github.com/holoscene/holoscene/internal/core/anchor"
	"github.com/holoscene/holoscene/internal/core/geom"
	"github.com/holoscene/holoscene/internal/core/observability/log"
	"github.com/holoscene/holoscene/pkg/generic"
)

// DefaultMaxAttempts bounds the resolution loop. There is no other
// timeout: the budget is what keeps a layout pass finite.
const DefaultMaxAttempts = 20

// Push magnitudes in meters. Colliding with the UI panel pushes
// laterally away from it; colliding with another asset pushes away from
// the user with a slight sideways drift so repeated pushes do not
// oscillate between the same two spots.
const (
	uiPush        = 0.4
	forwardPush   = 0.3
	sidewaysDrift = 0.15
)

// uiColliderID marks the UI panel in the colliding-set trace; placed
// assets report their slice index.
const uiColliderID = -1

// Result is the outcome of one resolution run.
type Result struct {
	Position geom.Vec3
	Resolved bool
	Attempts int
}

// Resolver holds the attempt budget and logger. One resolver serves an
// engine instance; it keeps no per-run state beyond pooled scratch.
type Resolver struct {
	maxAttempts int
	logger      log.Log
	scratch     *generic.SlicePool[int]
}

func NewResolver(maxAttempts int, logger log.Log) *Resolver {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Resolver{
		maxAttempts: maxAttempts,
		logger:      logger,
		scratch:     generic.NewSlicePool[int](8),
	}
}

// Resolve tests candidate against the UI collider and every previously
// placed collider, perturbing it until free. On success Resolved is
// true and Attempts counts the perturbations needed (zero when the
// candidate was already free). On budget exhaustion the last attempted
// position comes back with Resolved=false; overlap is degraded but
// non-fatal output.
func (r *Resolver) Resolve(candidate geom.AABB, a anchor.Anchor, ui geom.AABB, placed []geom.AABB) Result {
	box := candidate
	hits := r.scratch.Get()
	defer r.scratch.Put(hits)

	for attempt := 0; attempt <= r.maxAttempts; attempt++ {
		hits = r.collect(box, ui, placed, hits[:0])
		if len(hits) == 0 {
			return Result{Position: box.Center(), Resolved: true, Attempts: attempt}
		}
		if attempt == r.maxAttempts {
			break
		}

		push := r.pushFor(box, a, ui, hits)
		r.logger.Debug("collision push",
			log.Int("attempt", attempt+1),
			log.Int("colliding", len(hits)),
			log.Float64("push_x", push.X),
			log.Float64("push_z", push.Z),
		)
		box = box.Translate(push)
	}

	pos := box.Center()
	r.logger.Warn("collision resolution budget exhausted",
		log.Int("attempts", r.maxAttempts),
		log.Float64("x", pos.X),
		log.Float64("y", pos.Y),
		log.Float64("z", pos.Z),
	)
	return Result{Position: pos, Resolved: false, Attempts: r.maxAttempts}
}

// Check reports whether box intersects the UI collider or any placed
// collider, without resolving.
func (r *Resolver) Check(box, ui geom.AABB, placed []geom.AABB) bool {
	hits := r.scratch.Get()
	defer r.scratch.Put(hits)
	return len(r.collect(box, ui, placed, hits[:0])) > 0
}

// collect gathers the colliding set: UI first, then placed colliders in
// placement order.
func (r *Resolver) collect(box, ui geom.AABB, placed []geom.AABB, hits []int) []int {
	if !ui.IsDegenerate() && box.Intersects(ui) {
		hits = append(hits, uiColliderID)
	}
	for i, p := range placed {
		if box.Intersects(p) {
			hits = append(hits, i)
		}
	}
	return hits
}

func (r *Resolver) pushFor(box geom.AABB, a anchor.Anchor, ui geom.AABB, hits []int) geom.Vec3 {
	if hits[0] == uiColliderID {
		// Move laterally off the panel, to whichever side the box
		// already leans.
		side := 1.0
		if box.Center().Sub(ui.Center()).Dot(a.Right) < 0 {
			side = -1
		}
		return a.Right.Scale(side * uiPush)
	}
	// Otherwise step away from the user with a sideways drift.
	return a.Forward.Scale(forwardPush).Add(a.Right.Scale(sidewaysDrift))
}
