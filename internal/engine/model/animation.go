package model

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/softras/internal/engine/raster"
	"github.com/Faultbox/softras/pkg/math"
)

// ErrTooManyBones is returned for skeletons larger than the bone table.
var ErrTooManyBones = errors.New("skeleton exceeds bone table capacity")

// RotKey is a rotation keyframe.
type RotKey struct {
	Frame    float32 // Milliseconds
	Rotation math.Quat
}

// PosKey is a translation keyframe.
type PosKey struct {
	Frame    float32
	Position math.Vec3
}

// ScaleKey is a scale keyframe.
type ScaleKey struct {
	Frame float32
	Scale math.Vec3
}

// Track holds the keyframes of one bone. Keys are sorted by frame.
type Track struct {
	RotKeys   []RotKey
	PosKeys   []PosKey
	ScaleKeys []ScaleKey
}

// Animation is a looping clip with one track per bone.
type Animation struct {
	Length float32 // Milliseconds
	Tracks []Track
}

func (a *Animation) track(i int) *Track {
	if a == nil || i >= len(a.Tracks) {
		return nil
	}
	return &a.Tracks[i]
}

// SwayAnimation bends every bone of a chain back and forth around Z.
func SwayAnimation(bones int, lengthMs, angle float32) *Animation {
	anim := &Animation{Length: lengthMs, Tracks: make([]Track, bones)}
	axis := math.Vec3{0, 0, 1}
	for i := 1; i < bones; i++ {
		anim.Tracks[i].RotKeys = []RotKey{
			{Frame: 0, Rotation: math.QuatIdentity()},
			{Frame: lengthMs / 4, Rotation: math.QuatFromAxisAngle(axis, angle)},
			{Frame: lengthMs * 3 / 4, Rotation: math.QuatFromAxisAngle(axis, -angle)},
			{Frame: lengthMs, Rotation: math.QuatIdentity()},
		}
	}
	return anim
}

// keyIndex finds the keys surrounding timeMs and the blend factor between
// them. prev == next means hold.
func keyIndex(n int, frame func(int) float32, timeMs float32) (prev, next int, t float32) {
	for i := 0; i < n; i++ {
		if frame(i) > timeMs {
			next = i
			break
		}
		prev = i
		next = i
	}
	if prev == next {
		return prev, next, 0
	}
	if f0, f1 := frame(prev), frame(next); f1 != f0 {
		t = (timeMs - f0) / (f1 - f0)
	}
	return prev, next, t
}

// InterpolateRotKeys interpolates rotation keyframes at the given time.
func InterpolateRotKeys(keys []RotKey, timeMs float32) math.Quat {
	if len(keys) == 0 {
		return math.QuatIdentity()
	}
	prev, next, t := keyIndex(len(keys), func(i int) float32 { return keys[i].Frame }, timeMs)
	if prev == next {
		return keys[prev].Rotation
	}
	return keys[prev].Rotation.Slerp(keys[next].Rotation, t)
}

// InterpolatePosKeys interpolates translation keyframes at the given time.
func InterpolatePosKeys(keys []PosKey, timeMs float32) math.Vec3 {
	if len(keys) == 0 {
		return math.Vec3{}
	}
	prev, next, t := keyIndex(len(keys), func(i int) float32 { return keys[i].Frame }, timeMs)
	return keys[prev].Position.Lerp(keys[next].Position, t)
}

// InterpolateScaleKeys interpolates scale keyframes at the given time.
func InterpolateScaleKeys(keys []ScaleKey, timeMs float32) math.Vec3 {
	if len(keys) == 0 {
		return math.Vec3{1, 1, 1}
	}
	prev, next, t := keyIndex(len(keys), func(i int) float32 { return keys[i].Frame }, timeMs)
	return keys[prev].Scale.Lerp(keys[next].Scale, t)
}

// HasAnimation checks if a clip has any moving track.
// Tracks with a single keyframe are static poses, not animations.
func HasAnimation(anim *Animation) bool {
	if anim == nil || anim.Length <= 0 {
		return false
	}
	for i := range anim.Tracks {
		tr := &anim.Tracks[i]
		if len(tr.RotKeys) > 1 || len(tr.PosKeys) > 1 || len(tr.ScaleKeys) > 1 {
			return true
		}
	}
	return false
}

// Animator plays a clip on a skeleton and produces bone poses.
type Animator struct {
	skeleton *Skeleton
	clip     *Animation
	time     float32
	poses    []math.Mat4
}

// NewAnimator checks the skeleton fits the bone table.
func NewAnimator(sk *Skeleton, clip *Animation) (*Animator, error) {
	if sk == nil {
		return nil, errors.New("animator needs a skeleton")
	}
	if len(sk.Bones) > raster.MaxBones {
		return nil, fmt.Errorf("%w: %d bones, capacity %d", ErrTooManyBones, len(sk.Bones), raster.MaxBones)
	}
	return &Animator{
		skeleton: sk,
		clip:     clip,
		poses:    make([]math.Mat4, len(sk.Bones)),
	}, nil
}

// Time returns the playhead in milliseconds.
func (a *Animator) Time() float32 {
	return a.time
}

// Advance moves the playhead by dtMs, wrapping at the clip length, and
// returns the bone poses. The returned slice is reused between calls.
func (a *Animator) Advance(dtMs float32) []math.Mat4 {
	a.time += dtMs
	if HasAnimation(a.clip) {
		a.time = float32(gomath.Mod(float64(a.time), float64(a.clip.Length)))
		if a.time < 0 {
			a.time += a.clip.Length
		}
	}
	return a.Pose()
}

// Pose returns the bone poses at the current time.
func (a *Animator) Pose() []math.Mat4 {
	for i := range a.poses {
		a.poses[i] = BuildBoneMatrix(a.skeleton, a.clip, i, a.time)
	}
	return a.poses
}
