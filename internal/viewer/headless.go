package viewer

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/softras/internal/engine/raster"
)

// headlessStep is the simulated frame time of a headless run.
const headlessStep = float32(1.0 / 60.0)

// Totals sums raster counters over several frames.
type Totals struct {
	Frames int
	raster.FrameStats
}

func (t *Totals) add(s raster.FrameStats) {
	t.Frames++
	t.Faces += s.Faces
	t.Discarded += s.Discarded
	t.Split += s.Split
	t.Rasterized += s.Rasterized
	t.Degenerate += s.Degenerate
	t.Fragments += s.Fragments
	t.DepthRejected += s.DepthRejected
}

// RunHeadless renders frames without a window at a fixed time step and
// logs the accumulated statistics.
func RunHeadless(s *Scene, frames int, log *zap.Logger) (Totals, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var totals Totals
	start := time.Now()

	for i := 0; i < frames; i++ {
		s.Update(headlessStep)
		if err := s.Render(); err != nil {
			return totals, err
		}
		totals.add(s.Stats())
	}

	elapsed := time.Since(start)
	fields := []zap.Field{
		zap.Int("frames", totals.Frames),
		zap.Duration("elapsed", elapsed),
		zap.Int("faces", totals.Faces),
		zap.Int("discarded", totals.Discarded),
		zap.Int("split", totals.Split),
		zap.Int("rasterized", totals.Rasterized),
		zap.Int("degenerate", totals.Degenerate),
		zap.Int("fragments", totals.Fragments),
		zap.Int("depth_rejected", totals.DepthRejected),
	}
	if totals.Frames > 0 {
		fields = append(fields, zap.Duration("per_frame", elapsed/time.Duration(totals.Frames)))
	}
	log.Info("headless run complete", fields...)
	return totals, nil
}
