package decolor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
)

func encodePNG(t *testing.T, img *Image) []byte {
	t.Helper()

	src := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			src.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("could not encode the test image: %v", err)
	}
	return buf.Bytes()
}

func TestProcessor_Process(t *testing.T) {
	assert := assert.New(t)

	src := redBlueImage()
	p := &Processor{Seed: 1, Quality: 100}

	var out bytes.Buffer
	err := p.Process(bytes.NewReader(encodePNG(t, src)), &out)
	assert.NoError(err)

	res, err := imaging.Decode(&out)
	assert.NoError(err)
	assert.Equal(image.Rect(0, 0, imgWidth, imgHeight), res.Bounds())

	r, _, _, _ := res.At(5, 5).RGBA()
	assert.InDelta(0, int(r>>8), 2)
	r, _, _, _ = res.At(imgWidth-5, 5).RGBA()
	assert.InDelta(255, int(r>>8), 2)
}

func TestProcessor_ProcessToFile(t *testing.T) {
	assert := assert.New(t)

	fname := filepath.Join(t.TempDir(), "gray.png")
	f, err := os.Create(fname)
	assert.NoError(err)

	p := &Processor{Seed: 1}
	err = p.Process(bytes.NewReader(encodePNG(t, redBlueImage())), f)
	assert.NoError(err)
	assert.NoError(f.Close())

	f, err = os.Open(fname)
	assert.NoError(err)
	defer f.Close()

	// The lossless encoder is picked from the file extension.
	res, err := png.Decode(f)
	assert.NoError(err)

	gray, ok := res.(*image.Gray)
	assert.True(ok)
	assert.Equal(uint8(0), gray.GrayAt(0, 0).Y)
	assert.Equal(uint8(255), gray.GrayAt(imgWidth-1, imgHeight-1).Y)
}

func TestProcessor_ProcessInvalidSource(t *testing.T) {
	p := &Processor{}

	var out bytes.Buffer
	err := p.Process(bytes.NewReader([]byte("not an image")), &out)
	assert.Error(t, err)
	assert.Zero(t, out.Len())
}
