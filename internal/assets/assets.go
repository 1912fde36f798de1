// Package assets decodes images and reads font files for views.
// Lookups go through an ordered list of file systems: an optional directory
// given on the command line first, then the defaults embedded in the binary.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path"
	"strings"

	// Image decoders registered for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

//go:embed data
var embedded embed.FS

// ErrAssetLoad reports an asset that could not be opened or decoded.
var ErrAssetLoad = errors.New("asset load failure")

// Loader resolves asset paths against its file systems in order.
type Loader struct {
	layers []fs.FS
}

// New creates a loader that looks in dir (when non-empty) before the
// embedded defaults.
func New(dir string) *Loader {
	var layers []fs.FS
	if dir != "" {
		layers = append(layers, os.DirFS(dir))
	}
	layers = append(layers, Builtin())
	return &Loader{layers: layers}
}

// NewFS creates a loader over explicit file systems, searched in order.
func NewFS(layers ...fs.FS) *Loader {
	return &Loader{layers: layers}
}

// Builtin returns the embedded default assets.
func Builtin() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// The data directory is compiled in; failing here is a build defect.
		panic(fmt.Sprintf("assets: embedded data missing: %v", err))
	}
	return sub
}

// ReadFile returns the raw bytes of an asset.
func (l *Loader) ReadFile(name string) ([]byte, error) {
	clean, err := cleanPath(name)
	if err != nil {
		return nil, err
	}

	var lastErr error = fs.ErrNotExist
	for _, layer := range l.layers {
		data, err := fs.ReadFile(layer, clean)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %s: %w", ErrAssetLoad, name, lastErr)
}

// LoadImage opens and fully decodes an image asset.
func (l *Loader) LoadImage(name string) (image.Image, error) {
	clean, err := cleanPath(name)
	if err != nil {
		return nil, err
	}

	var lastErr error = fs.ErrNotExist
	for _, layer := range l.layers {
		img, err := decode(layer, clean)
		if err == nil {
			return img, nil
		}
		lastErr = err
		if !errors.Is(err, fs.ErrNotExist) {
			// The file exists but is broken; do not mask it with a fallback.
			break
		}
	}
	return nil, fmt.Errorf("%w: %s: %w", ErrAssetLoad, name, lastErr)
}

// Exists reports whether any layer has the named asset.
func (l *Loader) Exists(name string) bool {
	clean, err := cleanPath(name)
	if err != nil {
		return false
	}
	for _, layer := range l.layers {
		if _, err := fs.Stat(layer, clean); err == nil {
			return true
		}
	}
	return false
}

func decode(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

// cleanPath turns user-facing asset paths into fs.FS paths.
// A leading "assets/" is accepted for compatibility with configs that name
// files relative to the repository root.
func cleanPath(name string) (string, error) {
	p := path.Clean(strings.TrimPrefix(strings.ReplaceAll(name, "\\", "/"), "/"))
	p = strings.TrimPrefix(p, "assets/")
	if !fs.ValidPath(p) || p == "." {
		return "", fmt.Errorf("%w: invalid path %q", ErrAssetLoad, name)
	}
	return p, nil
}
