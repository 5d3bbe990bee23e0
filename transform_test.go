package sway

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- computeLocalTransform ---

func TestLocalTransformIdentity(t *testing.T) {
	n := NewGroup("test")
	assertMatrix(t, "identity", computeLocalTransform(n), [6]float64{1, 0, 0, 1, 0, 0})
}

func TestLocalTransformTranslation(t *testing.T) {
	n := NewGroup("test")
	n.X = 10
	n.Y = 20
	assertMatrix(t, "translation", computeLocalTransform(n), [6]float64{1, 0, 0, 1, 10, 20})
}

func TestLocalTransformScale(t *testing.T) {
	n := NewGroup("test")
	n.ScaleX = 2
	n.ScaleY = 3
	assertMatrix(t, "scale", computeLocalTransform(n), [6]float64{2, 0, 0, 3, 0, 0})
}

func TestLocalTransformRotation90(t *testing.T) {
	n := NewGroup("test")
	n.Rotation = math.Pi / 2
	// cos(90)=0, sin(90)=1 → a=0, b=1, c=-1, d=0
	assertMatrix(t, "rot90", computeLocalTransform(n), [6]float64{0, 1, -1, 0, 0, 0})
}

func TestLocalTransformOrigin(t *testing.T) {
	n := NewGroup("test")
	n.X = 100
	n.Y = 100
	n.OriginX = 10
	n.OriginY = 10
	n.ScaleX = 2
	n.ScaleY = 2
	m := computeLocalTransform(n)
	// The origin maps onto itself before translation.
	x, y := transformPoint(m, 10, 10)
	assertNear(t, "origin.x", x, 110)
	assertNear(t, "origin.y", y, 110)
}

// --- multiplyAffine / invertAffine ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 0, 0, 3, 10, 20}
	assertMatrix(t, "I*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*I", multiplyAffine(m, identityTransform), m)
}

func TestMultiplyAffineTranslations(t *testing.T) {
	a := [6]float64{1, 0, 0, 1, 10, 20}
	b := [6]float64{1, 0, 0, 1, 5, 7}
	assertMatrix(t, "a*b", multiplyAffine(a, b), [6]float64{1, 0, 0, 1, 15, 27})
}

func TestInvertAffine(t *testing.T) {
	m := [6]float64{2, 0.5, -0.3, 1.5, 40, -12}
	assertMatrix(t, "m*inv(m)", multiplyAffine(m, invertAffine(m)), identityTransform)
}

func TestInvertAffineSingularReturnsIdentity(t *testing.T) {
	assertMatrix(t, "singular", invertAffine([6]float64{0, 0, 0, 0, 5, 5}), identityTransform)
}

// --- ComputedTransform ---

func TestComputedTransformParentChild(t *testing.T) {
	parent := NewGroup("parent")
	child := NewGroup("child")
	parent.AddChild(child)
	parent.X = 100
	parent.ScaleX = 2
	child.X = 10

	m := child.ComputedTransform()
	assertNear(t, "child.tx", m[4], 120)
	assertNear(t, "child.a", m[0], 2)
}

func TestDeepHierarchy(t *testing.T) {
	nodes := make([]*Node, 10)
	for i := range nodes {
		nodes[i] = NewGroup("")
		nodes[i].X = 10
		if i > 0 {
			nodes[i-1].AddChild(nodes[i])
		}
	}
	assertNear(t, "leaf.tx", nodes[9].ComputedTransform()[4], 100)
}

// --- SetLocalTransform / bakeTransform ---

func TestSetLocalTransformDecomposes(t *testing.T) {
	src := NewGroup("src")
	src.X, src.Y = 30, -4
	src.ScaleX, src.ScaleY = 2, 0.5
	src.Rotation = math.Pi / 3

	n := NewGroup("n")
	n.SetLocalTransform(computeLocalTransform(src))
	assertNear(t, "X", n.X, 30)
	assertNear(t, "Y", n.Y, -4)
	assertNear(t, "ScaleX", n.ScaleX, 2)
	assertNear(t, "ScaleY", n.ScaleY, 0.5)
	assertNear(t, "Rotation", n.Rotation, math.Pi/3)
}

func TestBakeTransformKeepsPlacement(t *testing.T) {
	parent := NewGroup("parent")
	parent.X, parent.Y = 50, 20
	parent.Rotation = math.Pi / 2
	child := NewPath("child", []Vec2{{0, 0}, {4, 0}, {4, 2}}, ColorWhite)
	child.X = 5
	parent.AddChild(child)

	before := child.ComputedTransform()
	child.bakeTransform()
	parent.RemoveChild(child)
	assertMatrix(t, "baked", child.ComputedTransform(), before)
}

func TestBakeTransformDetachedNoOp(t *testing.T) {
	n := NewGroup("n")
	n.X = 3
	n.OriginX = 7
	n.bakeTransform()
	if n.OriginX != 7 {
		t.Error("bakeTransform on a root node should not change it")
	}
}

func TestMapPoints(t *testing.T) {
	a := NewGroup("a")
	a.X = 10
	b := NewGroup("b")
	b.X = 4
	b.ScaleX = 2
	got := mapPoints([]Vec2{{0, 0}, {2, 3}}, a, b)
	// a-local (2,3) is root (12,3); b-local is ((12-4)/2, 3).
	assertNear(t, "p0.x", got[0].X, 3)
	assertNear(t, "p1.x", got[1].X, 4)
	assertNear(t, "p1.y", got[1].Y, 3)
}

// --- Setters ---

func TestSettersDirty(t *testing.T) {
	n := NewGroup("n")
	check := func(name string, fn func()) {
		t.Helper()
		n.ClearDirty()
		fn()
		if !n.transformDirty {
			t.Errorf("%s should mark transform dirty", name)
		}
	}
	check("SetPosition", func() { n.SetPosition(1, 2) })
	check("SetScale", func() { n.SetScale(2, 2) })
	check("SetRotation", func() { n.SetRotation(1) })
	check("SetOrigin", func() { n.SetOrigin(3, 4) })
	check("MarkDirty", n.MarkDirty)
}

// --- Benchmarks ---

func BenchmarkComputeLocalTransform(b *testing.B) {
	n := NewGroup("bench")
	n.X = 100
	n.Y = 200
	n.ScaleX = 2
	n.ScaleY = 3
	n.Rotation = 0.5
	n.OriginX = 16
	n.OriginY = 16

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		computeLocalTransform(n)
	}
}

func BenchmarkMultiplyAffine(b *testing.B) {
	p := [6]float64{1, 0, 0, 1, 100, 200}
	c := [6]float64{2, 0.5, -0.5, 2, 10, 20}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		multiplyAffine(p, c)
	}
}
