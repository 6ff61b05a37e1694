package math3d

import "testing"

func BenchmarkVectorOps(b *testing.B) {
	v := V(1, 2, 3, 1)
	w := V(4, 5, 6, 1)
	var r Vector

	b.Run("Add", func(b *testing.B) {
		for b.Loop() {
			r = v.Add(w)
		}
	})
	b.Run("Dot", func(b *testing.B) {
		var d float64
		for b.Loop() {
			d = v.Dot(w)
		}
		b.Log(d)
	})
	b.Run("Cross", func(b *testing.B) {
		for b.Loop() {
			r = v.Cross(w)
		}
	})
	b.Run("Normalize", func(b *testing.B) {
		for b.Loop() {
			r = v.Normalize()
		}
	})
	b.Log(r)
}

func BenchmarkMatrixMul(b *testing.B) {
	a := Translate(1, 2, 3)
	c := Scale(2, 2, 2)
	var r Matrix
	for b.Loop() {
		r = Mul(a, c)
	}
	b.Log(r[3][0])
}

func BenchmarkApply(b *testing.B) {
	m := Mul(Translate(1, 2, 3), Perspective(1.0, 1.333, 1, 500))
	v := Point(1, 1, 1)
	var r Vector
	for b.Loop() {
		r = Apply(v, m)
	}
	b.Log(r)
}
