package raster

import (
	"math"
	"testing"

	"github.com/mini3dgo/raster3d/pkg/math3d"
)

func TestInitCombinesStack(t *testing.T) {
	tr := Init(640, 480)
	want := math3d.Mul(math3d.Mul(tr.World, tr.View), tr.Projection)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(tr.Combined[i][j]-want[i][j]) > 1e-5 {
				t.Fatalf("Combined[%d][%d] = %v, want %v", i, j, tr.Combined[i][j], want[i][j])
			}
		}
	}
}

func TestUpdateAfterWorldChange(t *testing.T) {
	tr := Init(100, 100)
	tr.World = math3d.Translate(5, 0, 0)
	tr.Update()
	want := math3d.Mul(math3d.Mul(tr.World, tr.View), tr.Projection)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(tr.Combined[i][j]-want[i][j]) > 1e-5 {
				t.Fatalf("Combined[%d][%d] = %v, want %v", i, j, tr.Combined[i][j], want[i][j])
			}
		}
	}
}

func TestApplyIdentityTransform(t *testing.T) {
	tr := Transform{World: math3d.Identity(), View: math3d.Identity(), Projection: math3d.Identity()}
	tr.Update()
	v := math3d.V(1, 2, 3, 1)
	got := tr.Apply(v)
	if got != v {
		t.Errorf("Apply(v, I) = %v, want %v", got, v)
	}
}

func TestCheckCVV(t *testing.T) {
	tests := []struct {
		name string
		v    math3d.Vector
		want bool // true means in-bounds (zero bits)
	}{
		{"center", math3d.V(0, 0, 1, 2), true},
		{"on x max", math3d.V(2, 0, 1, 2), true},
		{"beyond x max", math3d.V(2.001, 0, 1, 2), false},
		{"beyond y min", math3d.V(0, -2.001, 1, 2), false},
		{"z below zero", math3d.V(0, 0, -0.1, 2), false},
		{"z at w", math3d.V(0, 0, 2, 2), true},
		{"z above w", math3d.V(0, 0, 2.1, 2), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CheckCVV(tc.v) == 0
			if got != tc.want {
				t.Errorf("CheckCVV(%v) in-bounds = %v, want %v", tc.v, got, tc.want)
			}
		})
	}
}

func TestHomogenizeRoundTrip(t *testing.T) {
	tr := Init(800, 600)
	x := math3d.V(1, 2, 3, 4)
	y := tr.Homogenize(x)
	if math.Abs(y.W*x.W-1) > 1e-5 {
		t.Errorf("homogenize(x).w * x.w = %v, want 1", y.W*x.W)
	}
}

func TestHomogenizeFlipsY(t *testing.T) {
	tr := Transform{W: 4, H: 4}
	top := tr.Homogenize(math3d.V(0, 1, 0, 1))
	bottom := tr.Homogenize(math3d.V(0, -1, 0, 1))
	if top.Y >= bottom.Y {
		t.Errorf("clip +y should map above clip -y on screen: top.Y=%v bottom.Y=%v", top.Y, bottom.Y)
	}
}

func TestCheckCCWCulling(t *testing.T) {
	tests := []struct {
		name         string
		p1, p2, p3   math3d.Vector
		wantCullable bool
	}{
		{"front winding", math3d.Point(0, 0, 0), math3d.Point(2, 0, 0), math3d.Point(0, 2, 0), false},
		{"clockwise back (spec scenario 3)", math3d.Point(0, 0, 0), math3d.Point(0, 2, 0), math3d.Point(2, 0, 0), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CheckCCWCulling(tc.p1, tc.p2, tc.p3)
			if got != tc.wantCullable {
				t.Errorf("CheckCCWCulling = %v, want %v", got, tc.wantCullable)
			}
		})
	}
}
