package image

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/jmylchreest/duotint/internal/compression"
	"github.com/jmylchreest/duotint/internal/security"
	httputil "github.com/jmylchreest/duotint/internal/util/http"
	"github.com/jmylchreest/duotint/internal/util/imagecache"
)

// StdinSource is the source name that reads an image from standard input.
const StdinSource = "-"

// SmartLoaderOptions configures a SmartLoader.
type SmartLoaderOptions struct {
	// Timeout bounds HTTP fetches. Zero uses the HTTP default.
	Timeout time.Duration

	// Cache stores fetched images on disk and reuses them on later runs.
	Cache bool

	// CacheDir overrides the default image cache directory.
	CacheDir string

	// Stdin is read for the "-" source. Defaults to os.Stdin.
	Stdin io.Reader
}

// SmartLoader loads images from local files, directories, HTTP(S) URLs and stdin.
type SmartLoader struct {
	fileLoader *FileLoader
	opts       SmartLoaderOptions
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader(opts SmartLoaderOptions) *SmartLoader {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	return &SmartLoader{
		fileLoader: NewFileLoader(),
		opts:       opts,
	}
}

// Load loads an image from a local file, a directory (its first image), an
// HTTP(S) URL or, for "-", standard input.
func (l *SmartLoader) Load(ctx context.Context, source string) (image.Image, error) {
	switch {
	case source == StdinSource:
		return l.loadFromReader(l.opts.Stdin)
	case isURL(source):
		return l.loadFromURL(ctx, source)
	}

	path, err := ResolveImagePath(source)
	if err != nil {
		return nil, err
	}
	return l.fileLoader.Load(ctx, path)
}

// loadFromReader decodes an image streamed from r.
func (l *SmartLoader) loadFromReader(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(security.NewLimitedReader(r, compression.DefaultLimit))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read image from stdin: %w", ErrInvalidInput, err)
	}
	return DecodeBytes(data)
}

// loadFromURL fetches and decodes an image from an HTTP(S) URL, going through
// the on-disk cache when enabled.
func (l *SmartLoader) loadFromURL(ctx context.Context, url string) (image.Image, error) {
	if err := security.ValidateImageURL(url); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if l.opts.Cache {
		path, err := imagecache.DownloadAndCache(ctx, url, imagecache.CacheOptions{
			CacheDir: l.opts.CacheDir,
			Timeout:  l.opts.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
		}
		return l.fileLoader.Load(ctx, path)
	}

	data, err := httputil.Fetch(ctx, url, httputil.FetchOptions{Timeout: l.opts.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}

	img, err := DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return img, nil
}
