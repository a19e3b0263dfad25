package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/esimov/decolor"
	"github.com/esimov/decolor/utils"
)

const helpBanner = `
┌┬┐┌─┐┌─┐┌─┐┬  ┌─┐┬─┐
 ││├┤ │  │ ││  │ │├┬┘
─┴┘└─┘└─┘└─┘┴─┘└─┘┴└─

Contrast preserving color to grayscale conversion.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

func main() {
	log.SetFlags(0)

	var (
		// Flags
		source      = flag.String("in", pipeName, "Source image, directory or URL")
		destination = flag.String("out", pipeName, "Destination image or directory")
		method      = flag.String("method", decolor.RTCP, "Decolorization method: rtcp or luma")
		seed        = flag.Int64("seed", 0, "Seed of the pixel pair sampling (0 picks a random one)")
		quality     = flag.Int("quality", 95, "JPEG output quality")
		workers     = flag.Int("workers", runtime.NumCPU(), "Number of goroutines scoring the channel weights")
		conc        = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")
		debug       = flag.Bool("debug", false, "Log the chosen channel weights")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	proc := &decolor.Processor{
		Seed:    *seed,
		Workers: *workers,
		Quality: *quality,
		Method:  *method,
		Debug:   *debug,
	}

	op := &decolor.Ops{
		Src:      *source,
		Dst:      *destination,
		PipeName: pipeName,
		Workers:  *conc,
	}

	if err := proc.Execute(op); err != nil {
		log.Fatalf("%s%s",
			utils.DecorateText("\nError converting the image: ", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}
}
