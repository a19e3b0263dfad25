package decolor

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/esimov/decolor/utils"
)

// Compose converts the image to grayscale by mixing the color channels with the provided weight.
func Compose(img *Image, w Weight) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, img.Width, img.Height))

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			lum := float64(c.R)*w.R + float64(c.G)*w.G + float64(c.B)*w.B
			dst.Pix[y*dst.Stride+x] = uint8(utils.Clamp(math.Round(lum), 0, 255))
		}
	}
	return dst
}

// ConvertToGray converts the image to grayscale using the contrast preserving
// decolorization with the default options.
func ConvertToGray(img *Image) (*image.Gray, error) {
	p := &Processor{}
	gray, _, err := p.Grayscale(img)

	return gray, err
}

// luma converts the image to grayscale with the fixed Rec. 601 luma coefficients.
func luma(img *Image) *image.Gray {
	src := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			src.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	res := imaging.Grayscale(src)

	dst := image.NewGray(res.Bounds())
	for i := 0; i < len(dst.Pix); i++ {
		dst.Pix[i] = res.Pix[i*4]
	}
	return dst
}
