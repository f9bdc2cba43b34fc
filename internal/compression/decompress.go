// Package compression detects and unwraps compressed image streams.
package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/duotint/internal/security"
	"github.com/ulikunitz/xz"
)

// DefaultLimit is the largest decompressed payload accepted.
const DefaultLimit = 64 * 1024 * 1024

// Format identifies a compression container.
type Format string

const (
	// FormatNone marks data that is not compressed.
	FormatNone Format = ""
	// FormatGzip is a gzip stream.
	FormatGzip Format = "gzip"
	// FormatBzip2 is a bzip2 stream.
	FormatBzip2 Format = "bzip2"
	// FormatXz is an xz stream.
	FormatXz Format = "xz"
)

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte("BZh")
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// extensions maps file suffixes to their container format.
var extensions = map[string]Format{
	".gz":  FormatGzip,
	".bz2": FormatBzip2,
	".xz":  FormatXz,
}

// Detect reports the compression format of data from its magic bytes.
func Detect(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return FormatGzip
	case bytes.HasPrefix(data, xzMagic):
		return FormatXz
	case bytes.HasPrefix(data, bzip2Magic):
		return FormatBzip2
	default:
		return FormatNone
	}
}

// TrimExtension removes a compression suffix from name and reports the format
// it implied. Names without a known suffix are returned unchanged.
func TrimExtension(name string) (string, Format) {
	lower := strings.ToLower(name)
	for ext, format := range extensions {
		if strings.HasSuffix(lower, ext) {
			return name[:len(name)-len(ext)], format
		}
	}
	return name, FormatNone
}

// Decompress unwraps data if it is gzip, bzip2 or xz compressed and returns it
// along with the detected format. Uncompressed data is returned as is. Output
// larger than limit bytes is rejected; a limit of zero or less uses DefaultLimit.
func Decompress(data []byte, limit int64) ([]byte, Format, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	format := Detect(data)
	var r io.Reader
	switch format {
	case FormatGzip:
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, format, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzr.Close()
		r = gzr
	case FormatXz:
		xzr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, format, fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xzr
	case FormatBzip2:
		r = bzip2.NewReader(bytes.NewReader(data))
	default:
		return data, FormatNone, nil
	}

	out, err := io.ReadAll(security.NewLimitedReader(r, limit))
	if err != nil {
		return nil, format, fmt.Errorf("failed to decompress %s stream: %w", format, err)
	}
	return out, format, nil
}
