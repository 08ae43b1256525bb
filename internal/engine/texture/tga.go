// Package texture decodes image files into raster surfaces. TGA is handled
// here; PNG, JPEG and BMP go through the image package decoders. Channel
// order is reconciled once, at load time.
package texture

import (
	"fmt"
	"image"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// DecodeTGA decodes a TGA image.
// Supports uncompressed (type 2) and RLE compressed (type 10) true-color
// images at 24 or 32 bits per pixel, stored either bottom-up or top-down.
func DecodeTGA(data []byte) (*image.NRGBA, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("%w: TGA header truncated", ErrDecode)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped TGA not supported", ErrUnsupportedFormat)
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("%w: TGA type %d", ErrUnsupportedFormat, imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("%w: TGA bit depth %d", ErrUnsupportedFormat, bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: TGA id field truncated", ErrDecode)
	}

	d := tgaDecoder{
		img:         image.NewNRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		width:       width,
		height:      height,
		bpp:         bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}
	if imageType == TGATypeUncompressed {
		if len(d.src) < width*height*d.bpp {
			return nil, fmt.Errorf("%w: TGA pixel data truncated", ErrDecode)
		}
		for i := 0; i < width*height; i++ {
			d.put(i, d.src[i*d.bpp:])
		}
		return d.img, nil
	}
	if err := d.rle(); err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img         *image.NRGBA
	src         []byte
	width       int
	height      int
	bpp         int
	topToBottom bool
}

// put stores the BGR(A) pixel px at linear index i of the file's row order.
func (d *tgaDecoder) put(i int, px []byte) {
	x := i % d.width
	y := i / d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	o := d.img.PixOffset(x, y)
	d.img.Pix[o+0] = px[2]
	d.img.Pix[o+1] = px[1]
	d.img.Pix[o+2] = px[0]
	d.img.Pix[o+3] = 255
	if d.bpp == 4 {
		d.img.Pix[o+3] = px[3]
	}
}

func (d *tgaDecoder) rle() error {
	count := d.width * d.height
	pixel := 0
	pos := 0

	for pixel < count {
		if pos >= len(d.src) {
			return fmt.Errorf("%w: TGA RLE data ends at pixel %d of %d", ErrDecode, pixel, count)
		}
		header := d.src[pos]
		pos++
		run := int(header&0x7F) + 1

		if header&0x80 != 0 {
			// Run-length packet: one pixel repeated
			if pos+d.bpp > len(d.src) {
				return fmt.Errorf("%w: TGA RLE packet truncated", ErrDecode)
			}
			px := d.src[pos : pos+d.bpp]
			pos += d.bpp
			for i := 0; i < run && pixel < count; i++ {
				d.put(pixel, px)
				pixel++
			}
			continue
		}

		// Raw packet
		for i := 0; i < run && pixel < count; i++ {
			if pos+d.bpp > len(d.src) {
				return fmt.Errorf("%w: TGA raw packet truncated", ErrDecode)
			}
			d.put(pixel, d.src[pos:pos+d.bpp])
			pos += d.bpp
			pixel++
		}
	}
	return nil
}
