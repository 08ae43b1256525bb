package raster

import (
	"fmt"

	"go.uber.org/zap"
)

// FrameStats counts what happened to the triangles of one draw call.
type FrameStats struct {
	Faces         int // Triangles submitted
	Discarded     int // Wholly outside a clip plane
	Split         int // Clip operations that produced new triangles
	Rasterized    int // Triangles scan-converted
	Degenerate    int // Zero-area triangles skipped
	Fragments     int // Pixels shaded
	DepthRejected int // Pixels failing the depth test
}

// DrawTriangles renders an indexed triangle list with the NormalMapped
// program.
func (s *Surface) DrawTriangles(vertices []Vertex, indices []uint32, materials []Material) error {
	return s.DrawTrianglesWith(NormalMapped{}, vertices, indices, materials)
}

// DrawTrianglesWith renders an indexed triangle list with program.
// Each vertex is transformed once per triangle that references it.
func (s *Surface) DrawTrianglesWith(program Program, vertices []Vertex, indices []uint32, materials []Material) error {
	if !s.HasDepth() {
		return ErrNoDepthBuffer
	}
	if err := validateIndices(len(vertices), indices); err != nil {
		return err
	}

	s.stats = FrameStats{}
	s.beginFrame()

	s.faces = s.faces[:0]
	for i := 0; i < len(indices); i += 3 {
		s.faces = append(s.faces, Face{
			&vertices[indices[i]],
			&vertices[indices[i+1]],
			&vertices[indices[i+2]],
		})
	}
	s.stats.Faces = len(s.faces)

	s.outputs = s.outputs[:0]
	for _, f := range s.faces {
		s.outputs = append(s.outputs, FaceOutput{
			program.Vertex(s, f[0]),
			program.Vertex(s, f[1]),
			program.Vertex(s, f[2]),
		})
	}

	clipped := s.clipper.Clip(s.outputs)
	s.stats.Discarded = s.clipper.Discarded
	s.stats.Split = s.clipper.Split

	for i := range clipped {
		face := &clipped[i]
		perspectiveDivide(face)
		s.rasterize(program, face, materials)
	}

	s.log.Debug("draw",
		zap.String("program", program.Name()),
		zap.Int("faces", s.stats.Faces),
		zap.Int("discarded", s.stats.Discarded),
		zap.Int("split", s.stats.Split),
		zap.Int("fragments", s.stats.Fragments),
	)
	return nil
}

func validateIndices(vertexCount int, indices []uint32) error {
	if len(indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidIndices, len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= vertexCount {
			return fmt.Errorf("%w: index %d at %d out of range (%d vertices)", ErrInvalidIndices, idx, i, vertexCount)
		}
	}
	return nil
}
