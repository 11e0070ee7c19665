// Package scene defines the object model the layout engine works
// against. The real scene graph lives in the rendering layer; the
// engine only needs transforms and bounds, so Object is a narrow
// non-owning view. Node and Group are in-memory implementations used
// by tests and the demo server.
package scene

import (
	"github.com/google/uuid"

	"github.com/holoscene/holoscene/internal/core/geom"
)

// Object is the engine's view of one placeable scene-graph node. The
// engine holds Object values as back-references only and never manages
// their lifetime.
type Object interface {
	ID() uuid.UUID
	Name() string

	Position() geom.Vec3
	SetPosition(geom.Vec3)
	Rotation() geom.Euler
	SetRotation(geom.Euler)
	Scale() float64
	SetScale(float64)

	// LocalBounds is the geometry's bounding box in local, unscaled
	// units. OffsetGeometry shifts the geometry relative to the node
	// origin without moving the node itself; the normalizer uses it to
	// re-pivot objects bottom-centered.
	LocalBounds() geom.AABB
	OffsetGeometry(delta geom.Vec3)

	// WorldBounds is the box in world space after scale and
	// translation. Rotation is presentational (yaw toward the user)
	// and deliberately excluded from the collision volume.
	WorldBounds() geom.AABB

	// UpdateWorldMatrix forces recomputation of cached world-space
	// state after a transform change.
	UpdateWorldMatrix()
}

var _ Object = (*Node)(nil)

// Node is a single mesh-like object with its own local bounds.
type Node struct {
	id       uuid.UUID
	name     string
	position geom.Vec3
	rotation geom.Euler
	scale    float64

	local geom.AABB

	world      geom.AABB
	worldDirty bool
}

// NewNode creates a node with the given local-space bounds and scale 1.
func NewNode(name string, local geom.AABB) *Node {
	return &Node{
		id:         uuid.New(),
		name:       name,
		scale:      1,
		local:      local,
		worldDirty: true,
	}
}

func (n *Node) ID() uuid.UUID { return n.id }

func (n *Node) Name() string { return n.name }

func (n *Node) Position() geom.Vec3 { return n.position }

func (n *Node) SetPosition(p geom.Vec3) {
	n.position = p
	n.worldDirty = true
}

func (n *Node) Rotation() geom.Euler { return n.rotation }

func (n *Node) SetRotation(r geom.Euler) { n.rotation = r }

func (n *Node) Scale() float64 { return n.scale }

func (n *Node) SetScale(s float64) {
	n.scale = s
	n.worldDirty = true
}

func (n *Node) LocalBounds() geom.AABB { return n.local }

func (n *Node) OffsetGeometry(delta geom.Vec3) {
	n.local = n.local.Translate(delta)
	n.worldDirty = true
}

func (n *Node) WorldBounds() geom.AABB {
	if n.worldDirty {
		n.UpdateWorldMatrix()
	}
	return n.world
}

func (n *Node) UpdateWorldMatrix() {
	n.world = geom.AABB{
		Min: n.local.Min.Scale(n.scale).Add(n.position),
		Max: n.local.Max.Scale(n.scale).Add(n.position),
	}
	n.worldDirty = false
}

var _ Object = (*Group)(nil)

// Group is a container of child nodes with no geometry of its own; its
// bounds are the union of the children's. Loaded lesson models arrive
// as groups when the source asset has multiple meshes.
type Group struct {
	id       uuid.UUID
	name     string
	position geom.Vec3
	rotation geom.Euler
	scale    float64
	children []*Node
}

func NewGroup(name string, children ...*Node) *Group {
	return &Group{
		id:       uuid.New(),
		name:     name,
		scale:    1,
		children: children,
	}
}

func (g *Group) ID() uuid.UUID { return g.id }

func (g *Group) Name() string { return g.name }

func (g *Group) Children() []*Node { return g.children }

func (g *Group) Position() geom.Vec3 { return g.position }

func (g *Group) SetPosition(p geom.Vec3) { g.position = p }

func (g *Group) Rotation() geom.Euler { return g.rotation }

func (g *Group) SetRotation(r geom.Euler) { g.rotation = r }

func (g *Group) Scale() float64 { return g.scale }

func (g *Group) SetScale(s float64) { g.scale = s }

// LocalBounds unions the children's bounds, each offset by the child's
// position within the group.
func (g *Group) LocalBounds() geom.AABB {
	if len(g.children) == 0 {
		return geom.AABB{}
	}
	b := g.childBounds(g.children[0])
	for _, c := range g.children[1:] {
		b = b.Union(g.childBounds(c))
	}
	return b
}

func (g *Group) childBounds(c *Node) geom.AABB {
	return geom.AABB{
		Min: c.LocalBounds().Min.Scale(c.Scale()).Add(c.Position()),
		Max: c.LocalBounds().Max.Scale(c.Scale()).Add(c.Position()),
	}
}

// OffsetGeometry shifts every child, since a group has no single local
// origin of its own.
func (g *Group) OffsetGeometry(delta geom.Vec3) {
	for _, c := range g.children {
		c.SetPosition(c.Position().Add(delta))
	}
}

func (g *Group) WorldBounds() geom.AABB {
	local := g.LocalBounds()
	return geom.AABB{
		Min: local.Min.Scale(g.scale).Add(g.position),
		Max: local.Max.Scale(g.scale).Add(g.position),
	}
}

func (g *Group) UpdateWorldMatrix() {
	for _, c := range g.children {
		c.UpdateWorldMatrix()
	}
}
