// Package picture renders the ECB pattern leak: pixel data encrypted block
// by block keeps the outline of the source image because equal plaintext
// blocks give equal ciphertext blocks.
package picture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"gost-ecb/internal/crypto"

	"github.com/HugoSmits86/nativewebp"
	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Load reads a PNG, JPEG, GIF, BMP, TGA or WebP file and returns an NRGBA image.
func Load(path string) (*image.NRGBA, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("picture: read %s: %w", path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("picture: decode %s: %w", path, err)
	}

	return toNRGBA(img), nil
}

// toNRGBA converts any image to NRGBA format with origin at (0, 0).
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	switch src.(type) {
	case *image.YCbCr, *image.Gray:
		// No alpha
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				dst.SetNRGBA(x-b.Min.X, y-b.Min.Y, c)
			}
		}
	}
	return dst
}

// EncryptPixels encrypts the RGB channels of img in ECB mode. Whole
// 8-byte blocks of the packed RGB stream are encrypted; a trailing partial
// block is copied unchanged. The result is fully opaque.
func EncryptPixels(e *crypto.ECB, img *image.NRGBA) (*image.NRGBA, error) {
	return cryptPixels(e, img, false)
}

// DecryptPixels reverses EncryptPixels. img must be the unscaled
// EncryptPixels output; after Fit the blocks no longer line up.
func DecryptPixels(e *crypto.ECB, img *image.NRGBA) (*image.NRGBA, error) {
	return cryptPixels(e, img, true)
}

func cryptPixels(e *crypto.ECB, img *image.NRGBA, decrypt bool) (*image.NRGBA, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	rgb := make([]byte, 0, w*h*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			rgb = append(rgb, img.Pix[i], img.Pix[i+1], img.Pix[i+2])
		}
	}

	whole := len(rgb) - len(rgb)%crypto.BlockSize
	if err := e.CryptBlocks(rgb[:whole], rgb[:whole], decrypt); err != nil {
		return nil, fmt.Errorf("picture: %w", err)
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for p := 0; p < w*h; p++ {
		out.Pix[p*4] = rgb[p*3]
		out.Pix[p*4+1] = rgb[p*3+1]
		out.Pix[p*4+2] = rgb[p*3+2]
		out.Pix[p*4+3] = 255
	}
	return out, nil
}

// Fit upscales img by an integer factor with nearest-neighbour sampling
// until its longer side is at least minSize. Smaller images keep their
// hard block edges this way.
func Fit(img *image.NRGBA, minSize int) *image.NRGBA {
	b := img.Bounds()
	side := max(b.Dx(), b.Dy())
	if side == 0 || side >= minSize {
		return img
	}

	factor := (minSize + side - 1) / side
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// Save writes img to path as lossless WebP, creating parent directories.
func Save(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("picture: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("picture: %w", err)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("picture: WebP encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("picture: %w", err)
	}
	return nil
}
