package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // register BMP decoder

	"github.com/Faultbox/softras/internal/engine/raster"
)

var (
	// ErrUnsupportedFormat is returned for files no decoder understands.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrDecode is returned for malformed image data.
	ErrDecode = errors.New("malformed image data")
)

// Decode decodes image data into a texture surface. The file name selects
// the TGA decoder; everything else is sniffed by the image package.
func Decode(name string, data []byte) (*raster.Surface, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		return raster.FromImage(img), nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("decoding %s: %w", name, ErrUnsupportedFormat)
		}
		return nil, fmt.Errorf("decoding %s as image: %w: %v", name, ErrDecode, err)
	}
	return raster.FromImage(img), nil
}

// Load reads and decodes an image file.
func Load(path string) (*raster.Surface, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}
	return Decode(path, data)
}

// LoadCubeMap loads six faces in raster.CubeFace order. Empty paths leave
// the face unbound.
func LoadCubeMap(paths [6]string) (*raster.CubeMap, error) {
	var faces [6]*raster.Surface
	for i, p := range paths {
		if p == "" {
			continue
		}
		s, err := Load(p)
		if err != nil {
			return nil, fmt.Errorf("cube face %s: %w", raster.CubeFace(i), err)
		}
		faces[i] = s
	}
	return raster.NewCubeMap(faces), nil
}
