package model

import (
	"errors"
	"testing"

	"github.com/Faultbox/softras/internal/engine/raster"
	"github.com/Faultbox/softras/pkg/math"
)

func nearMat(a, b math.Mat4) bool {
	for i := range a {
		if !near(a[i], b[i]) {
			return false
		}
	}
	return true
}

func TestInterpolateKeys(t *testing.T) {
	pos := []PosKey{
		{Frame: 0, Position: math.Vec3{0, 0, 0}},
		{Frame: 100, Position: math.Vec3{10, 0, 0}},
	}
	if got := InterpolatePosKeys(pos, 50); !nearVec(got, math.Vec3{5, 0, 0}) {
		t.Errorf("pos at 50 = %v", got)
	}
	if got := InterpolatePosKeys(pos, 500); !nearVec(got, math.Vec3{10, 0, 0}) {
		t.Errorf("pos past end = %v", got)
	}

	scale := []ScaleKey{{Frame: 0, Scale: math.Vec3{1, 1, 1}}, {Frame: 10, Scale: math.Vec3{3, 1, 1}}}
	if got := InterpolateScaleKeys(scale, 5); !nearVec(got, math.Vec3{2, 1, 1}) {
		t.Errorf("scale at 5 = %v", got)
	}
	if got := InterpolateScaleKeys(nil, 5); got != (math.Vec3{1, 1, 1}) {
		t.Errorf("empty scale = %v", got)
	}

	q := math.QuatFromAxisAngle(math.Vec3{0, 1, 0}, 1)
	rot := []RotKey{{Frame: 0, Rotation: math.QuatIdentity()}, {Frame: 10, Rotation: q}}
	if got := InterpolateRotKeys(rot, 10); got != q {
		t.Errorf("rot at end = %v", got)
	}
	if got := InterpolateRotKeys(nil, 10); got != math.QuatIdentity() {
		t.Errorf("empty rot = %v", got)
	}
}

func TestHasAnimation(t *testing.T) {
	if HasAnimation(nil) {
		t.Error("nil clip animated")
	}
	static := &Animation{Length: 100, Tracks: []Track{{RotKeys: []RotKey{{Rotation: math.QuatIdentity()}}}}}
	if HasAnimation(static) {
		t.Error("single-key clip animated")
	}
	if !HasAnimation(SwayAnimation(3, 1000, 0.5)) {
		t.Error("sway clip not animated")
	}
}

func TestBindPoseIsIdentity(t *testing.T) {
	sk := ChainSkeleton(4, 3)
	a, err := NewAnimator(sk, SwayAnimation(4, 1000, 0.5))
	if err != nil {
		t.Fatalf("NewAnimator: %v", err)
	}
	for i, m := range a.Pose() {
		if !nearMat(m, math.Identity()) {
			t.Errorf("bone %d bind pose = %v", i, m)
		}
	}
}

func TestAnimatorAdvance(t *testing.T) {
	sk := ChainSkeleton(3, 2)
	a, err := NewAnimator(sk, SwayAnimation(3, 2000, 0.5))
	if err != nil {
		t.Fatalf("NewAnimator: %v", err)
	}

	poses := a.Advance(500)
	if len(poses) != 3 {
		t.Fatalf("got %d poses", len(poses))
	}
	// Root has no track.
	if !nearMat(poses[0], math.Identity()) {
		t.Errorf("root pose = %v", poses[0])
	}
	// Bone 1 rotates about its own origin at y = 1, which stays fixed.
	pivot := poses[1].MulPoint(math.Vec3{0, 1, 0})
	if !nearVec(pivot.XYZ(), math.Vec3{0, 1, 0}) {
		t.Errorf("bone 1 pivot moved to %v", pivot)
	}
	tip := poses[2].MulPoint(math.Vec3{0, 2, 0})
	if near(tip[0], 0) {
		t.Error("tip should sway off the axis")
	}

	a.Advance(2000)
	if !near(a.Time(), 500) {
		t.Errorf("time = %v, want wrapped to 500", a.Time())
	}
}

func TestNewAnimatorCapacity(t *testing.T) {
	sk := ChainSkeleton(raster.MaxBones+1, 1)
	if _, err := NewAnimator(sk, nil); !errors.Is(err, ErrTooManyBones) {
		t.Errorf("err = %v, want ErrTooManyBones", err)
	}
	if _, err := NewAnimator(nil, nil); err == nil {
		t.Error("expected error for nil skeleton")
	}

	a, err := NewAnimator(ChainSkeleton(raster.MaxBones, 1), nil)
	if err != nil {
		t.Fatalf("NewAnimator: %v", err)
	}
	if got := len(a.Advance(16)); got != raster.MaxBones {
		t.Errorf("got %d poses", got)
	}
}

func TestMalformedParentsTerminate(t *testing.T) {
	sk := &Skeleton{Bones: []Bone{
		{Parent: 1, Rotation: math.QuatIdentity(), Scale: math.Vec3{1, 1, 1}, InverseBind: math.Identity()},
		{Parent: 0, Rotation: math.QuatIdentity(), Scale: math.Vec3{1, 1, 1}, InverseBind: math.Identity()},
	}}
	m := BuildBoneMatrix(sk, nil, 0, 0)
	if !nearMat(m, math.Identity()) {
		t.Errorf("cyclic skeleton pose = %v", m)
	}
}
