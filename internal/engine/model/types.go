// Package model provides procedural meshes, tangent generation and
// skeletal animation producing bone poses for the rasterizer.
package model

import (
	"github.com/Faultbox/softras/internal/engine/raster"
	"github.com/Faultbox/softras/pkg/math"
)

// MaterialGroup is a run of indices drawn with one material.
type MaterialGroup struct {
	Material   int
	StartIndex int
	IndexCount int
}

// Mesh holds vertices and indices ready for raster.DrawTriangles.
type Mesh struct {
	Name     string
	Vertices []raster.Vertex
	Indices  []uint32
	Groups   []MaterialGroup
	Bounds   Bounds

	// Skeleton and Animation are set for skinned meshes.
	Skeleton  *Skeleton
	Animation *Animation
}

// Skinned reports whether the mesh carries a skeleton.
func (m *Mesh) Skinned() bool {
	return m.Skeleton != nil
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Radius returns the radius of the sphere enclosing the box.
func (b Bounds) Radius() float32 {
	return b.Size().Length() / 2
}

// BuildOptions contains options for mesh building.
type BuildOptions struct {
	// ReverseWinding flips triangle winding (for inside-out viewing).
	ReverseWinding bool
	// Color is the vertex color. Zero means white.
	Color math.Vec3
	// Material is written into every vertex's UV.z.
	Material int
}

func (o BuildOptions) color() math.Vec3 {
	if o.Color == (math.Vec3{}) {
		return math.Vec3{1, 1, 1}
	}
	return o.Color
}
