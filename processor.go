package decolor

import (
	"fmt"
	"image"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/esimov/decolor/utils"
)

// Supported decolorization methods.
const (
	// RTCP picks the channel weights preserving the most color contrast of the image.
	RTCP = "rtcp"
	// Luma uses the fixed Rec. 601 coefficients.
	Luma = "luma"
)

// defaultQuality is the jpeg quality used when none is provided.
const defaultQuality = 95

// Processor options
type Processor struct {
	// Seed initializes the pixel pair shuffling. Zero seeds it from the clock.
	Seed int64
	// Workers is the number of goroutines scoring the candidate weights.
	Workers int
	Quality int
	Method  string
	Spinner *utils.Spinner
	Debug   bool
}

// random returns a new random source for each conversion, so the same
// seed yields the same result even when the processor is shared.
func (p *Processor) random() *rand.Rand {
	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Decide samples the image and returns the channel weight maximizing the
// preserved contrast. Images without any contrasted pixel pair get EqualWeight.
func (p *Processor) Decide(img *Image) (Result, error) {
	if err := img.Validate(); err != nil {
		return Result{}, err
	}

	pairs := NewSampler(p.random()).Pairs(img.Width, img.Height)
	cs := Accumulate(img, pairs)

	e := NewEvaluator()
	e.Workers = p.Workers
	res := e.Best(WeightSpace(), cs)

	if p.Debug {
		if res.Fallback {
			log.Printf("no contrasted pair out of %d sampled, using %v", len(pairs), res.Weight)
		} else {
			log.Printf("retained %d/%d pairs, best weight %v with energy %.4f",
				res.Pairs, len(pairs), res.Weight, res.Score)
		}
	}
	return res, nil
}

// Grayscale converts the image to a single channel image of the same size.
func (p *Processor) Grayscale(img *Image) (*image.Gray, Result, error) {
	switch p.Method {
	case "", RTCP:
		res, err := p.Decide(img)
		if err != nil {
			return nil, res, err
		}
		return Compose(img, res.Weight), res, nil
	case Luma:
		if err := img.Validate(); err != nil {
			return nil, Result{}, err
		}
		return luma(img), Result{Weight: Weight{R: 0.299, G: 0.587, B: 0.114}}, nil
	default:
		return nil, Result{}, fmt.Errorf("unsupported decolorization method: %q", p.Method)
	}
}

// Process decodes the source image, converts it to grayscale and encodes the result into w.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	src, err := decodeImg(r)
	if err != nil {
		return err
	}

	gray, _, err := p.Grayscale(NewImage(src))
	if err != nil {
		return err
	}

	quality := p.Quality
	if quality <= 0 || quality > 100 {
		quality = defaultQuality
	}
	return encodeImg(w, gray, quality)
}
