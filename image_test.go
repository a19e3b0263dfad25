package decolor

import (
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImage_NewImage(t *testing.T) {
	rect := image.Rect(-1, -1, 15, 15)
	colors := palette.Plan9
	testCases := []struct {
		name string
		img  image.Image
	}{
		{
			name: "NRGBA",
			img:  makeNRGBAImage(rect, colors),
		},
		{
			name: "Gray",
			img:  makeGrayImage(rect, colors),
		},
		{
			name: "YCbCr-444",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio444),
		},
		{
			name: "YCbCr-422",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio422),
		},
		{
			name: "YCbCr-420",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio420),
		},
		{
			name: "YCbCr-440",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio440),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dst := NewImage(tc.img)
			r := tc.img.Bounds()

			assert.Equal(t, r.Dx(), dst.Width)
			assert.Equal(t, r.Dy(), dst.Height)
			assert.NoError(t, dst.Validate())

			for y := r.Min.Y; y < r.Max.Y; y++ {
				got := readImageRow(dst, y-r.Min.Y)
				want := readRow(tc.img, y)
				if !compareBytes(got, want, 1) {
					t.Errorf("row (y=%d): got %v want %v", y, got, want)
				}
			}
		})
	}
}

func TestImage_Validate(t *testing.T) {
	testCases := []struct {
		name string
		img  *Image
	}{
		{name: "nil", img: nil},
		{name: "zero width", img: &Image{Width: 0, Height: 2}},
		{name: "negative height", img: &Image{Width: 2, Height: -1}},
		{name: "short buffer", img: &Image{Width: 2, Height: 2, Pix: make([]uint8, 11)}},
		{name: "long buffer", img: &Image{Width: 2, Height: 2, Pix: make([]uint8, 13)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.img.Validate()
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidImage))
		})
	}

	assert.NoError(t, (&Image{Width: 2, Height: 2, Pix: make([]uint8, 12)}).Validate())
}

func TestImage_ChannelOrder(t *testing.T) {
	rgb := &Image{Width: 1, Height: 1, Pix: []uint8{10, 20, 30}, Order: OrderRGB}
	bgr := &Image{Width: 1, Height: 1, Pix: []uint8{10, 20, 30}, Order: OrderBGR}

	assert.Equal(t, RGB{R: 10, G: 20, B: 30}, rgb.At(0, 0))
	assert.Equal(t, RGB{R: 30, G: 20, B: 10}, bgr.At(0, 0))
}

func makeYCbCrImage(rect image.Rectangle, colors []color.Color, sr image.YCbCrSubsampleRatio) *image.YCbCr {
	img := image.NewYCbCr(rect, sr)
	j := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			iy := img.YOffset(x, y)
			ic := img.COffset(x, y)
			c := color.NRGBAModel.Convert(colors[j]).(color.NRGBA)
			img.Y[iy], img.Cb[ic], img.Cr[ic] = color.RGBToYCbCr(c.R, c.G, c.B)
			j++
		}
	}
	return img
}

func makeNRGBAImage(rect image.Rectangle, colors []color.Color) *image.NRGBA {
	img := image.NewNRGBA(rect)
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			c := color.NRGBAModel.Convert(colors[i]).(color.NRGBA)
			c.A = uint8(i % 256)
			img.SetNRGBA(x, y, c)
			i++
		}
	}
	return img
}

func makeGrayImage(rect image.Rectangle, colors []color.Color) *image.Gray {
	img := image.NewGray(rect)
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, colors[i])
			i++
		}
	}
	return img
}

// readRow returns the non-premultiplied RGB values of an image row.
func readRow(img image.Image, y int) []uint8 {
	row := make([]byte, 0, img.Bounds().Dx()*3)
	for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
		var c color.NRGBA
		if src, ok := img.(*image.NRGBA); ok {
			c = src.NRGBAAt(x, y)
		} else {
			c = color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
		}
		row = append(row, c.R, c.G, c.B)
	}
	return row
}

func readImageRow(img *Image, y int) []uint8 {
	row := make([]byte, 0, img.Width*3)
	for x := 0; x < img.Width; x++ {
		c := img.At(x, y)
		row = append(row, c.R, c.G, c.B)
	}
	return row
}

func compareBytes(a, b []uint8, delta int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if d := int(a[i]) - int(b[i]); d > delta || -d > delta {
			return false
		}
	}
	return true
}
