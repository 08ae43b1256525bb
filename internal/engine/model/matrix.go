package model

import (
	"github.com/Faultbox/softras/pkg/math"
)

// Bone is one joint of a skeleton. Position, Rotation and Scale are the
// rest transform relative to the parent.
type Bone struct {
	Name     string
	Parent   int // -1 for roots
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3

	// InverseBind maps mesh space into the bone's rest frame.
	InverseBind math.Mat4
}

// Skeleton is an ordered bone hierarchy.
type Skeleton struct {
	Bones []Bone
}

// ChainSkeleton builds a vertical chain of bones evenly spaced over height,
// each the parent of the next.
func ChainSkeleton(bones int, height float32) *Skeleton {
	sk := &Skeleton{Bones: make([]Bone, bones)}
	step := float32(0)
	if bones > 1 {
		step = height / float32(bones-1)
	}
	for i := range sk.Bones {
		b := Bone{
			Parent:   i - 1,
			Rotation: math.QuatIdentity(),
			Scale:    math.Vec3{1, 1, 1},
		}
		if i > 0 {
			b.Position = math.Vec3{0, step, 0}
		}
		b.InverseBind = math.Translate(0, -step*float32(i), 0)
		sk.Bones[i] = b
	}
	return sk
}

// BuildBoneMatrix returns the skinning matrix of bone i at the given
// animation time: the bone's hierarchy matrix times its inverse bind.
func BuildBoneMatrix(sk *Skeleton, anim *Animation, i int, timeMs float32) math.Mat4 {
	visited := make(map[int]bool)
	return buildHierarchyMatrix(sk, anim, i, timeMs, visited).Mul(sk.Bones[i].InverseBind)
}

// buildHierarchyMatrix returns the matrix children inherit:
// parent_hierarchy * Position * Rotation * Scale.
func buildHierarchyMatrix(sk *Skeleton, anim *Animation, i int, timeMs float32, visited map[int]bool) math.Mat4 {
	// Prevent infinite recursion on malformed parent links
	if visited[i] {
		return math.Identity()
	}
	visited[i] = true

	local := localMatrix(&sk.Bones[i], anim.track(i), timeMs)

	parent := sk.Bones[i].Parent
	if parent >= 0 && parent < len(sk.Bones) && parent != i {
		return buildHierarchyMatrix(sk, anim, parent, timeMs, visited).Mul(local)
	}
	return local
}

func localMatrix(b *Bone, track *Track, timeMs float32) math.Mat4 {
	pos := b.Position
	rot := b.Rotation
	scale := b.Scale
	if track != nil {
		if len(track.PosKeys) > 0 {
			pos = InterpolatePosKeys(track.PosKeys, timeMs)
		}
		if len(track.RotKeys) > 0 {
			rot = InterpolateRotKeys(track.RotKeys, timeMs)
		}
		if len(track.ScaleKeys) > 0 {
			scale = InterpolateScaleKeys(track.ScaleKeys, timeMs)
		}
	}

	m := math.Translate(pos[0], pos[1], pos[2])
	m = m.Mul(rot.ToMat4())
	return m.Mul(math.Scale(scale[0], scale[1], scale[2]))
}
