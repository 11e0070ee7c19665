package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{name: "Axis vector", in: Vec3{X: 3}, want: Vec3{X: 1}},
		{name: "Diagonal", in: Vec3{X: 1, Y: 1, Z: 1}, want: Vec3{X: 1 / math.Sqrt(3), Y: 1 / math.Sqrt(3), Z: 1 / math.Sqrt(3)}},
		{name: "Near zero collapses to zero", in: Vec3{X: 1e-9, Z: -1e-9}, want: Zero},
		{name: "Zero stays zero", in: Zero, want: Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.True(t, got.ApproxEqual(tt.want), "got %+v want %+v", got, tt.want)
		})
	}
}

func TestVec3_RotateY(t *testing.T) {
	forward := Vec3{Z: -1}

	// Positive yaw turns -Z toward -X in a right-handed Y-up frame.
	left := forward.RotateY(math.Pi / 2)
	assert.True(t, left.ApproxEqual(Vec3{X: -1}), "got %+v", left)

	right := forward.RotateY(-math.Pi / 2)
	assert.True(t, right.ApproxEqual(Vec3{X: 1}), "got %+v", right)

	full := forward.RotateY(2 * math.Pi)
	assert.True(t, full.ApproxEqual(forward))
}

func TestVec3_Cross(t *testing.T) {
	// forward × up points to the viewer's right: (-Z) × (+Y) = +X
	got := Vec3{Z: -1}.Cross(Up)
	assert.True(t, got.ApproxEqual(Vec3{X: 1}), "got %+v", got)
}

func TestQuat_RotateVec(t *testing.T) {
	tests := []struct {
		name string
		q    Quat
		in   Vec3
		want Vec3
	}{
		{name: "Identity", q: QuatIdentity, in: Vec3{X: 1, Y: 2, Z: 3}, want: Vec3{X: 1, Y: 2, Z: 3}},
		{name: "Quarter turn about Y", q: QuatFromAxisAngle(Up, math.Pi/2), in: Vec3{Z: -1}, want: Vec3{X: -1}},
		{name: "Half turn about Y", q: QuatFromAxisAngle(Up, math.Pi), in: Vec3{Z: -1}, want: Vec3{Z: 1}},
		{name: "Quarter turn about X", q: QuatFromAxisAngle(Vec3{X: 1}, math.Pi/2), in: Vec3{Y: 1}, want: Vec3{Z: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.q.RotateVec(tt.in)
			assert.True(t, got.ApproxEqual(tt.want), "got %+v want %+v", got, tt.want)
		})
	}
}

func TestYawTo(t *testing.T) {
	origin := Zero
	assert.InDelta(t, 0, YawTo(origin, Vec3{Z: -2}), Epsilon)
	assert.InDelta(t, -math.Pi/2, YawTo(origin, Vec3{X: 3}), Epsilon)
	assert.InDelta(t, math.Pi/2, YawTo(origin, Vec3{X: -3}), Epsilon)
}

func TestAABB_Intersects(t *testing.T) {
	tests := []struct {
		name string
		a, b AABB
		want bool
	}{
		{
			name: "Overlapping",
			a:    NewAABB(Zero, Vec3{1, 1, 1}),
			b:    NewAABB(Vec3{0.5, 0.5, 0.5}, Vec3{2, 2, 2}),
			want: true,
		},
		{
			name: "Disjoint on X only",
			a:    NewAABB(Zero, Vec3{1, 1, 1}),
			b:    NewAABB(Vec3{2, 0, 0}, Vec3{3, 1, 1}),
			want: false,
		},
		{
			name: "Touching faces count",
			a:    NewAABB(Zero, Vec3{1, 1, 1}),
			b:    NewAABB(Vec3{1, 0, 0}, Vec3{2, 1, 1}),
			want: true,
		},
		{
			name: "Contained",
			a:    NewAABB(Zero, Vec3{4, 4, 4}),
			b:    NewAABB(Vec3{1, 1, 1}, Vec3{2, 2, 2}),
			want: true,
		},
		{
			name: "Overlap on two axes but not the third",
			a:    NewAABB(Zero, Vec3{1, 1, 1}),
			b:    NewAABB(Vec3{0.5, 0.5, 5}, Vec3{1.5, 1.5, 6}),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Intersects(tt.b))
			// Intersection is symmetric.
			assert.Equal(t, tt.a.Intersects(tt.b), tt.b.Intersects(tt.a))
		})
	}
}

func TestAABB_CenterSize(t *testing.T) {
	box := NewAABB(Vec3{-1, 0, -1}, Vec3{1, 2, 3})
	assert.True(t, box.Center().ApproxEqual(Vec3{0, 1, 1}))
	assert.True(t, box.Size().ApproxEqual(Vec3{2, 2, 4}))
	assert.InDelta(t, 4, box.MaxExtent(), Epsilon)

	rebuilt := FromCenterSize(box.Center(), box.Size())
	assert.True(t, rebuilt.Min.ApproxEqual(box.Min))
	assert.True(t, rebuilt.Max.ApproxEqual(box.Max))
}

func TestAABB_MoveTo(t *testing.T) {
	box := NewAABB(Zero, Vec3{1, 1, 1})
	moved := box.MoveTo(Vec3{10, 5, -3})
	assert.True(t, moved.Center().ApproxEqual(Vec3{10, 5, -3}))
	assert.True(t, moved.Size().ApproxEqual(box.Size()))
}

func TestAABB_Separation(t *testing.T) {
	a := NewAABB(Zero, Vec3{1, 1, 1})

	t.Run("No overlap yields zero", func(t *testing.T) {
		b := NewAABB(Vec3{5, 5, 5}, Vec3{6, 6, 6})
		assert.Equal(t, Zero, a.Separation(b))
	})

	t.Run("Pushes along least-penetration axis", func(t *testing.T) {
		b := NewAABB(Vec3{0.9, 0, 0}, Vec3{2, 1, 1})
		sep := a.Separation(b)
		require.NotEqual(t, Zero, sep)
		moved := a.Translate(sep)
		// Moved box may still touch but must not penetrate.
		assert.LessOrEqual(t, moved.Max.X, b.Min.X+Epsilon)
	})
}

func TestAABB_Degenerate(t *testing.T) {
	assert.True(t, AABB{}.IsDegenerate())
	assert.False(t, NewAABB(Zero, Vec3{0.1, 0.1, 0.1}).IsDegenerate())
}
