// Package image provides utilities for loading and decoding theme images.
package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "github.com/gen2brain/avif" // Register AVIF format
	_ "golang.org/x/image/bmp"    // Register BMP format
	_ "golang.org/x/image/tiff"   // Register TIFF format
	_ "golang.org/x/image/webp"   // Register WebP format

	"github.com/jmylchreest/duotint/internal/compression"
)

var (
	// ErrInvalidInput marks a source that is not an image at all: an empty or
	// missing path, a directory, non-image content or an unusable stream.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDecodeFailure marks content that looks like an image but cannot be decoded.
	ErrDecodeFailure = errors.New("failed to decode image")
)

// sniffLength is the number of leading bytes inspected for a content type.
const sniffLength = 512

// Loader loads an image from a source such as a path or URL.
type Loader interface {
	// Load loads an image from the given source.
	Load(ctx context.Context, source string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct {
	// MaxBytes bounds the size of a decompressed image. Zero uses
	// compression.DefaultLimit.
	MaxBytes int64
}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP, BMP, TIFF and AVIF, optionally
// wrapped in gzip, bzip2 or xz.
func (l *FileLoader) Load(ctx context.Context, path string) (image.Image, error) {
	if err := checkFile(path); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read image file: %w", ErrInvalidInput, err)
	}

	img, err := decodeWithLimit(data, l.MaxBytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// checkFile verifies that path names an existing regular file.
func checkFile(path string) error {
	if path == "" {
		return fmt.Errorf("%w: image path cannot be empty", ErrInvalidInput)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: image file not found: %s", ErrInvalidInput, path)
		}
		return fmt.Errorf("%w: failed to stat image file: %w", ErrInvalidInput, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%w: path is a directory, not a file: %s", ErrInvalidInput, path)
	}
	return nil
}

// DecodeBytes decodes an in-memory image. Compressed payloads are unwrapped
// first. Content that is not an image yields ErrInvalidInput; an image that
// fails to decode yields ErrDecodeFailure. Animated images decode to their
// first frame.
func DecodeBytes(data []byte) (image.Image, error) {
	return decodeWithLimit(data, compression.DefaultLimit)
}

func decodeWithLimit(data []byte, limit int64) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image data", ErrInvalidInput)
	}

	raw, format, err := compression.Decompress(data, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if contentType, ok := SniffImage(raw); !ok {
		if format != compression.FormatNone {
			return nil, fmt.Errorf("%w: %s stream does not contain an image (content type %s)", ErrInvalidInput, format, contentType)
		}
		return nil, fmt.Errorf("%w: not an image (content type %s)", ErrInvalidInput, contentType)
	}

	img, name, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w (format: %s): %w", ErrDecodeFailure, name, err)
	}
	return img, nil
}

// magic holds signatures for image formats the standard content sniffer does
// not report as image/*.
var magic = []struct {
	contentType string
	match       func([]byte) bool
}{
	{contentType: "image/tiff", match: func(b []byte) bool {
		return bytes.HasPrefix(b, []byte("II*\x00")) || bytes.HasPrefix(b, []byte("MM\x00*"))
	}},
	{contentType: "image/avif", match: func(b []byte) bool {
		return len(b) >= 12 && string(b[4:8]) == "ftyp" &&
			(string(b[8:12]) == "avif" || string(b[8:12]) == "avis")
	}},
	{contentType: "image/webp", match: func(b []byte) bool {
		return len(b) >= 12 && string(b[0:4]) == "RIFF" && string(b[8:12]) == "WEBP"
	}},
}

// SniffImage reports the content type of data and whether it is an image.
func SniffImage(data []byte) (string, bool) {
	head := data[:min(len(data), sniffLength)]

	contentType := http.DetectContentType(head)
	if strings.HasPrefix(contentType, "image/") {
		return contentType, true
	}
	for _, m := range magic {
		if m.match(head) {
			return m.contentType, true
		}
	}
	return contentType, false
}

// ValidateImagePath checks that path is an image source duotint can read:
// an HTTP(S) URL, "-" for stdin, a directory or a decodable image file.
// URLs and directories are only checked for form; fetching and scanning happen later.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: image path cannot be empty", ErrInvalidInput)
	}

	if path == StdinSource || isURL(path) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: image file or directory not found: %s", ErrInvalidInput, path)
		}
		return fmt.Errorf("%w: failed to access image path: %w", ErrInvalidInput, err)
	}

	if info.IsDir() {
		return nil
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("%w: failed to open image file: %w", ErrInvalidInput, err)
	}
	defer file.Close()

	head := make([]byte, sniffLength)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: failed to read image file: %w", ErrInvalidInput, err)
	}
	head = head[:n]

	if compression.Detect(head) != compression.FormatNone {
		// The container is checked when the image is loaded.
		return nil
	}
	if contentType, ok := SniffImage(head); !ok {
		return fmt.Errorf("%w: unsupported file type %s: %s", ErrInvalidInput, contentType, path)
	}
	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff", ".avif"}
}

// isImageFile checks if a file has a supported image extension, looking
// through a compression suffix such as ".png.gz".
func isImageFile(path string) bool {
	name, _ := compression.TrimExtension(path)
	ext := strings.ToLower(filepath.Ext(name))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// ScanDirectoryForImages scans a directory and returns all image files sorted
// by name. It does not recurse into subdirectories, but follows symlinks.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read directory: %w", ErrInvalidInput, err)
	}

	var imageFiles []string
	for _, entry := range entries {
		fullPath := filepath.Join(dirPath, entry.Name())

		// For symlinks, stat the target to determine if it's a file.
		info, err := os.Stat(fullPath)
		if err != nil {
			continue
		}
		if info.IsDir() {
			continue
		}

		if isImageFile(entry.Name()) {
			imageFiles = append(imageFiles, fullPath)
		}
	}

	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("%w: no supported image files found in directory: %s", ErrInvalidInput, dirPath)
	}

	slices.Sort(imageFiles)
	return imageFiles, nil
}

// ResolveImagePath resolves a path that could be a file or directory.
// A directory resolves to its lexically first image so that repeated runs
// pick the same file. Files, URLs and "-" are returned as-is.
func ResolveImagePath(path string) (string, error) {
	if path == StdinSource || isURL(path) {
		return path, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: failed to access path: %w", ErrInvalidInput, err)
	}

	if !info.IsDir() {
		return path, nil
	}

	imageFiles, err := ScanDirectoryForImages(path)
	if err != nil {
		return "", err
	}
	return imageFiles[0], nil
}

// GetImageDimensions returns the width and height of an image without fully loading it.
func GetImageDimensions(path string) (width, height int, err error) {
	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: failed to decode image config: %w", ErrDecodeFailure, err)
	}

	return config.Width, config.Height, nil
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
