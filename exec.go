package decolor

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/esimov/decolor/utils"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

var (
	// srcExtensions are the image types accepted as input.
	srcExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff", ".webp"}
	// dstExtensions are the image types the grayscale image can be encoded to.
	dstExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff"}
)

// Ops holds the source and destination of a conversion.
type Ops struct {
	Src, Dst, PipeName string
	Workers            int
}

// result holds the outcome of converting a single file.
type result struct {
	path string
	err  error
}

// Execute converts the source, be it a file, a pipe, an URL or a directory.
// Directories are walked recursively and their images are converted concurrently.
// It returns the last error encountered.
func (p *Processor) Execute(op *Ops) error {
	if p.Spinner == nil {
		p.Spinner = utils.NewSpinner(fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ DECOLOR", utils.StatusMessage),
			utils.DecorateText("⇢ converting image to grayscale...", utils.DefaultMessage),
		), time.Millisecond*80, true)
	}

	// Capture CTRL-C signal and restore back the cursor visibility.
	signalChan := make(chan os.Signal, 1)
	stop := make(chan struct{})
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(signalChan)
		close(stop)
	}()
	go func() {
		select {
		case <-signalChan:
			p.Spinner.RestoreCursor()
			os.Exit(1)
		case <-stop:
		}
	}()

	src := op.Src
	if utils.IsValidUrl(src) {
		f, err := utils.DownloadImage(src)
		if f != nil {
			defer os.Remove(f.Name())
			f.Close()
		}
		if err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		src = f.Name()
	}

	var (
		fs  os.FileInfo
		err error
	)
	if src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(src)
	}
	if err != nil {
		return fmt.Errorf("failed to load the source image: %w", err)
	}

	now := time.Now()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		err = op.convertDir(p, src)
	case mode.IsRegular() || mode&os.ModeNamedPipe != 0:
		ext := strings.ToLower(filepath.Ext(op.Dst))
		if !isValidExtension(ext, dstExtensions) && op.Dst != op.PipeName {
			return fmt.Errorf("%v file type not supported", ext)
		}
		err = op.process(p, src, op.Dst)
		op.printOpStatus(op.Dst, err)
	default:
		return fmt.Errorf("unsupported source: %s", src)
	}

	if err == nil {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
			utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}
	return err
}

// convertDir converts every supported image of the src directory into the destination directory.
func (op *Ops) convertDir(p *Processor, src string) error {
	if err := os.MkdirAll(op.Dst, 0755); err != nil {
		return fmt.Errorf("unable to create the destination directory: %w", err)
	}

	// The workers are sharing the spinner, so the progress is reported per file only.
	spinner := p.Spinner
	p.Spinner = nil
	defer func() { p.Spinner = spinner }()

	workers := op.Workers
	if workers <= 0 || workers > maxWorkers {
		workers = runtime.NumCPU()
	}

	var (
		wg      sync.WaitGroup
		err     error
		ch      = make(chan result)
		done    = make(chan struct{})
		targets = newClaims()
	)
	defer close(done)

	paths, errc := walkDir(done, src, srcExtensions)

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			op.consumer(p, src, targets, ch, done, paths)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	for res := range ch {
		if res.err != nil {
			err = res.err
		}
		op.printOpStatus(res.path, res.err)
	}

	if werr := <-errc; werr != nil {
		log.Print(utils.DecorateText(werr.Error(), utils.ErrorMessage))
		err = werr
	}
	return err
}

// consumer reads the path names from the paths channel and converts the source images.
func (op *Ops) consumer(
	p *Processor,
	root string,
	targets *claims,
	res chan<- result,
	done <-chan struct{},
	paths <-chan string,
) {
	for src := range paths {
		dst, err := destPath(op.Dst, root, src)
		if err == nil {
			err = targets.claim(dst, src)
		}
		if err == nil {
			err = os.MkdirAll(filepath.Dir(dst), 0755)
		}
		if err == nil {
			err = op.process(p, src, dst)
		}

		select {
		case <-done:
			return
		case res <- result{path: dst, err: err}:
		}
	}
}

// destPath returns the output path of src, mirroring its location relative
// to the root directory inside the dir directory. Sources which can't be
// encoded back in their own format get a .png extension appended.
func destPath(dir, root, src string) (string, error) {
	rel, err := filepath.Rel(root, src)
	if err != nil {
		return "", fmt.Errorf("unable to resolve the destination of %s: %w", src, err)
	}
	if !isValidExtension(strings.ToLower(filepath.Ext(rel)), dstExtensions) {
		rel += ".png"
	}
	return filepath.Join(dir, rel), nil
}

// claims keeps track of the destination paths already taken by a worker.
type claims struct {
	mu    sync.Mutex
	paths map[string]string
}

func newClaims() *claims {
	return &claims{paths: make(map[string]string)}
}

// claim reserves dst for src. It fails if another source has already reserved it.
func (c *claims) claim(dst, src string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.paths[dst]; ok {
		return fmt.Errorf("destination %s of %s is already used by %s", dst, src, prev)
	}
	c.paths[dst] = src
	return nil
}

// process converts the in image and writes the result into out.
func (op *Ops) process(p *Processor, in, out string) error {
	if p.Spinner != nil {
		p.Spinner.StopMsg = fmt.Sprintf("%s %s %s",
			utils.DecorateText("⚡ DECOLOR", utils.StatusMessage),
			utils.DecorateText("⇢", utils.DefaultMessage),
			utils.DecorateText("the image has been converted successfully ✔", utils.SuccessMessage),
		)
		p.Spinner.Start()
	}

	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		op.stopSpinner(p, err)
		return err
	}

	defer func() {
		if f, ok := src.(*os.File); ok && f != os.Stdin {
			if err := f.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()

	err = p.Process(src, dst)
	if f, ok := dst.(*os.File); ok && f != os.Stdout {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			// remove the generated image file in case of an error
			os.Remove(f.Name())
		}
	}
	op.stopSpinner(p, err)

	return err
}

func (op *Ops) stopSpinner(p *Processor, err error) {
	if p.Spinner == nil {
		return
	}
	if err != nil {
		p.Spinner.StopMsg = fmt.Sprintf("%s %s %s",
			utils.DecorateText("⚡ DECOLOR", utils.StatusMessage),
			utils.DecorateText("converting image failed...", utils.DefaultMessage),
			utils.DecorateText("✘", utils.ErrorMessage),
		)
	}
	p.Spinner.Stop()
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
	)

	// Check if the source is a pipe name or a regular file.
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		f, err := os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
		}
		src = f
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		f, err := os.OpenFile(out, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
		}
		dst = f
	}
	return src, dst, nil
}

// printOpStatus displays the relevant information about the conversion.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s%s",
			utils.DecorateText("\nError converting the image: "+fname, utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err), utils.DefaultMessage),
		)
		return
	}
	if fname != op.PipeName {
		fmt.Fprintf(os.Stderr, "\nThe image has been saved as: %s %s\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each supported file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan struct{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}
			if !isValidExtension(strings.ToLower(filepath.Ext(f.Name())), srcExts) {
				return nil
			}

			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	for _, ex := range extensions {
		if ex == ext {
			return true
		}
	}
	return false
}
