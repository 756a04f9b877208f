// Package imagex shrinks photos before they are uploaded.
//
// Photos at or under the byte limit are sent untouched. Larger ones are
// decoded (JPEG, PNG, GIF or WebP), scaled so the longest side fits the
// dimension limit, and re-encoded as JPEG into a work directory. Any
// failure falls back to the original file.
package imagex

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/tripdiary/internal/filex"
	"github.com/dmitrijs2005/tripdiary/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	workDirName = "preupload"
	jpegQuality = 85
)

type Options struct {
	// MaxBytes <= 0 disables preparation entirely.
	MaxBytes     int64
	MaxDimension int
	// BaseDir holds the work directory; empty means the current directory.
	BaseDir string
}

type Preparer struct {
	opts Options
	log  logging.Logger
}

func NewPreparer(opts Options, log logging.Logger) *Preparer {
	if opts.MaxDimension <= 0 {
		opts.MaxDimension = 2048
	}
	return &Preparer{opts: opts, log: log.With("module", "imagex")}
}

// LocalPath turns a file:// URI into a filesystem path. Plain paths are
// returned unchanged.
func LocalPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

// Prepare returns upload-ready paths for uris, in the same order. cleanup
// removes the temporary files it created.
func (p *Preparer) Prepare(ctx context.Context, uris []string) (paths []string, cleanup func()) {
	var created []string
	cleanup = func() {
		for _, f := range created {
			_ = os.Remove(f)
		}
	}

	paths = make([]string, 0, len(uris))
	for _, uri := range uris {
		src := LocalPath(uri)
		out, shrunk, err := p.prepareOne(src)
		if err != nil {
			p.log.Warn(ctx, "image left as is", "path", src, "error", err)
			paths = append(paths, src)
			continue
		}
		if shrunk {
			created = append(created, out)
		}
		paths = append(paths, out)
	}
	return paths, cleanup
}

func (p *Preparer) prepareOne(src string) (string, bool, error) {
	if p.opts.MaxBytes <= 0 {
		return src, false, nil
	}

	st, err := os.Stat(src)
	if err != nil {
		return "", false, err
	}
	if st.Size() <= p.opts.MaxBytes {
		return src, false, nil
	}

	f, err := os.Open(src)
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", false, fmt.Errorf("decode: %w", err)
	}

	dir, err := filex.EnsureDir(p.opts.BaseDir, workDirName)
	if err != nil {
		return "", false, err
	}
	dst := filepath.Join(dir, uuid.New().String()+".jpg")

	if err := writeJPEG(dst, Downscale(img, p.opts.MaxDimension)); err != nil {
		_ = os.Remove(dst)
		return "", false, err
	}
	return dst, true, nil
}

func writeJPEG(path string, img image.Image) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		_ = out.Close()
		return fmt.Errorf("encode: %w", err)
	}
	return out.Close()
}

// Fit returns the size of a w x h image scaled so that its longest side is
// at most maxDim, keeping the aspect ratio. Images that already fit are
// returned unchanged.
func Fit(w, h, maxDim int) (int, int) {
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return w, h
	}
	if w >= h {
		nh := h * maxDim / w
		return maxDim, max(nh, 1)
	}
	nw := w * maxDim / h
	return max(nw, 1), maxDim
}

// Downscale scales img to fit maxDim with Catmull-Rom resampling.
func Downscale(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := Fit(b.Dx(), b.Dy(), maxDim)
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
