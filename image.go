package decolor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// ErrInvalidImage is returned for images with no pixels or with a pixel buffer not matching the size.
var ErrInvalidImage = errors.New("invalid image")

// ChannelOrder is the order in which the color channels of a pixel are stored.
type ChannelOrder int

const (
	// OrderRGB stores the red channel first.
	OrderRGB ChannelOrder = iota
	// OrderBGR stores the blue channel first, as OpenCV does.
	OrderBGR
)

// offsets returns the byte offsets of the red, green and blue channels inside a pixel.
func (o ChannelOrder) offsets() (r, g, b int) {
	if o == OrderBGR {
		return 2, 1, 0
	}
	return 0, 1, 2
}

// RGB is a color with 8 bit channels.
type RGB struct {
	R, G, B uint8
}

// Image is a three channel image, stored row by row with 3 bytes per pixel.
type Image struct {
	Width  int
	Height int
	Pix    []uint8
	Order  ChannelOrder
}

// Validate checks the image dimensions against the pixel buffer.
func (img *Image) Validate() error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidImage, img.Width, img.Height)
	}
	if len(img.Pix) != img.Width*img.Height*3 {
		return fmt.Errorf("%w: expected %d bytes for %dx%d pixels, got %d",
			ErrInvalidImage, img.Width*img.Height*3, img.Width, img.Height, len(img.Pix))
	}
	return nil
}

// At returns the color of the pixel at (x, y).
func (img *Image) At(x, y int) RGB {
	ri, gi, bi := img.Order.offsets()
	i := (y*img.Width + x) * 3

	return RGB{R: img.Pix[i+ri], G: img.Pix[i+gi], B: img.Pix[i+bi]}
}

// NewImage converts any image type to an RGB ordered *Image with min-point at (0, 0).
// The alpha channel is dropped.
func NewImage(src image.Image) *Image {
	rect := src.Bounds()
	dst := &Image{
		Width:  rect.Dx(),
		Height: rect.Dy(),
		Pix:    make([]uint8, rect.Dx()*rect.Dy()*3),
		Order:  OrderRGB,
	}

	di := 0
	switch src := src.(type) {
	case *image.NRGBA:
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			si := src.PixOffset(rect.Min.X, y)
			for x := rect.Min.X; x < rect.Max.X; x++ {
				copy(dst.Pix[di:di+3], src.Pix[si:si+3])
				di += 3
				si += 4
			}
		}
	case *image.YCbCr:
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			for x := rect.Min.X; x < rect.Max.X; x++ {
				siy := src.YOffset(x, y)
				sic := src.COffset(x, y)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				di += 3
			}
		}
	default:
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			for x := rect.Min.X; x < rect.Max.X; x++ {
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				di += 3
			}
		}
	}
	return dst
}

// decodeImg decodes the source and applies the EXIF orientation, if any.
func decodeImg(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("could not decode the source image: %w", err)
	}
	return img, nil
}

// encodeImg encodes the image to a destination of type io.Writer.
// Files are encoded by their extension, any other writer receives a jpeg.
func encodeImg(w io.Writer, img image.Image, quality int) error {
	format := imaging.JPEG

	if f, ok := w.(*os.File); ok && filepath.Ext(f.Name()) != "" {
		var err error
		format, err = imaging.FormatFromFilename(f.Name())
		if err != nil {
			return err
		}
	}
	return imaging.Encode(w, img, format, imaging.JPEGQuality(quality))
}
