package raster

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/Faultbox/softras/pkg/math"
)

var white = math.Vec4{1, 1, 1, 1}

// Sample returns the texel nearest to uv, with u and v clamped to [0, 1].
// Absent textures sample as opaque white.
func (s *Surface) Sample(uv math.Vec3) math.Vec4 {
	if !s.Present() {
		return white
	}
	u := math.Clamp(uv[0], 0, 1)
	v := math.Clamp(uv[1], 0, 1)
	x := int(u * float32(s.width-1))
	y := int(v * float32(s.height-1))
	return s.GetPixel(x, y)
}

// SampleBilinear blends the 2x2 texel neighbourhood around uv. Textures
// narrower or shorter than two texels fall back to nearest sampling.
func (s *Surface) SampleBilinear(uv math.Vec3) math.Vec4 {
	if !s.Present() {
		return white
	}
	if s.width < 2 || s.height < 2 {
		return s.Sample(uv)
	}
	tx := math.Clamp(uv[0], 0, 1) * float32(s.width-2)
	ty := math.Clamp(uv[1], 0, 1) * float32(s.height-2)
	x0 := int(tx)
	y0 := int(ty)
	fu := tx - float32(x0)
	fv := ty - float32(y0)

	top := s.GetPixel(x0, y0).Lerp(s.GetPixel(x0+1, y0), fu)
	bottom := s.GetPixel(x0, y0+1).Lerp(s.GetPixel(x0+1, y0+1), fu)
	return top.Lerp(bottom, fv)
}

// FromImage converts a decoded image into a texture surface. Alpha stays
// non-premultiplied.
func FromImage(img image.Image) *Surface {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}

	w, h := b.Dx(), b.Dy()
	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < w; x++ {
			src := row[x*4 : x*4+4]
			dst := pix[(y*w+x)*4:]
			dst[0] = src[3]
			dst[1] = src[2]
			dst[2] = src[1]
			dst[3] = src[0]
		}
	}
	s, _ := NewTexture(w, h, pix)
	return s
}

// Image copies the surface into an NRGBA image.
func (s *Surface) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	for i := 0; i < len(s.pix); i += 4 {
		img.Pix[i+0] = s.pix[i+3]
		img.Pix[i+1] = s.pix[i+2]
		img.Pix[i+2] = s.pix[i+1]
		img.Pix[i+3] = s.pix[i+0]
	}
	return img
}
