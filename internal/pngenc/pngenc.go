package pngenc

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/tsawler/vellum/opstream"
)

// Encode converts image data to a PNG URL suitable for an <image> href.
//
// The forceDataURL parameter is part of the producer contract; this
// implementation has no object-URL scheme to fall back to, so the output is
// a data URL either way. isMask selects image-mask semantics for 1-bit data.
func Encode(img *opstream.ImageData, forceDataURL, isMask bool) (string, error) {
	if img.Width <= 0 || img.Height <= 0 {
		return "", fmt.Errorf("invalid image dimensions %dx%d", img.Width, img.Height)
	}

	var (
		decoded image.Image
		err     error
	)
	switch img.Kind {
	case opstream.ImageKindGrayscale1BPP:
		decoded, err = decodeGray1(img, isMask)
	case opstream.ImageKindRGB24BPP:
		decoded, err = decodeRGB(img)
	case opstream.ImageKindRGBA32BPP:
		decoded, err = decodeRGBA(img)
	default:
		return "", fmt.Errorf("unsupported image kind %d", img.Kind)
	}
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, decoded); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func decodeGray1(img *opstream.ImageData, isMask bool) (image.Image, error) {
	rowBytes := (img.Width + 7) / 8
	if len(img.Data) < rowBytes*img.Height {
		return nil, fmt.Errorf("1bpp image data too short: %d bytes for %dx%d",
			len(img.Data), img.Width, img.Height)
	}

	out := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		row := img.Data[y*rowBytes : (y+1)*rowBytes]
		for x := 0; x < img.Width; x++ {
			bit := (row[x>>3] >> (7 - uint(x&7))) & 1
			v := bit * 255
			if isMask {
				// A mask paints where the sample is zero; SVG masks
				// show where the luminance is white.
				v = 255 - v
			}
			out.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return out, nil
}

func decodeRGB(img *opstream.ImageData) (image.Image, error) {
	if len(img.Data) < img.Width*img.Height*3 {
		return nil, fmt.Errorf("RGB image data too short: %d bytes for %dx%d",
			len(img.Data), img.Width, img.Height)
	}

	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	src := 0
	for y := 0; y < img.Height; y++ {
		dst := out.PixOffset(0, y)
		for x := 0; x < img.Width; x++ {
			out.Pix[dst] = img.Data[src]
			out.Pix[dst+1] = img.Data[src+1]
			out.Pix[dst+2] = img.Data[src+2]
			out.Pix[dst+3] = 0xff
			src += 3
			dst += 4
		}
	}
	return out, nil
}

func decodeRGBA(img *opstream.ImageData) (image.Image, error) {
	if len(img.Data) < img.Width*img.Height*4 {
		return nil, fmt.Errorf("RGBA image data too short: %d bytes for %dx%d",
			len(img.Data), img.Width, img.Height)
	}

	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	copy(out.Pix, img.Data[:img.Width*img.Height*4])
	return out, nil
}
