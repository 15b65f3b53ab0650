// Package media resizes uploaded images into the stored main image and its
// square thumbnail.
package media

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // registers the webp decoder for image.Decode
)

const (
	MainMaxSize  = 1200
	MainQuality  = 85
	ThumbSize    = 400
	ThumbQuality = 80
	ThumbPrefix  = "thumb-"
)

var (
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
	trailingExt = regexp.MustCompile(`\.\w+$`)
)

// IsImage reports whether a declared content type is an image.
func IsImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// StoredName builds "<unix-millis>-<sanitized name>".
func StoredName(original string, now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), unsafeChars.ReplaceAllString(original, "_"))
}

// JPEGName swaps the final extension for .jpg, appending one if absent.
func JPEGName(name string) string {
	if trailingExt.MatchString(name) {
		return trailingExt.ReplaceAllString(name, ".jpg")
	}
	return name + ".jpg"
}

// Processed holds the encoded JPEG outputs.
type Processed struct {
	Main  []byte
	Thumb []byte
}

// Process decodes r and produces the main image (fit inside 1200x1200, never
// enlarged) and a 400x400 center-cropped thumbnail.
func Process(r io.Reader) (*Processed, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	var main bytes.Buffer
	fitted := imaging.Fit(img, MainMaxSize, MainMaxSize, imaging.Lanczos)
	if err := imaging.Encode(&main, fitted, imaging.JPEG, imaging.JPEGQuality(MainQuality)); err != nil {
		return nil, fmt.Errorf("encode main: %w", err)
	}

	var thumb bytes.Buffer
	filled := imaging.Fill(img, ThumbSize, ThumbSize, imaging.Center, imaging.Lanczos)
	if err := imaging.Encode(&thumb, filled, imaging.JPEG, imaging.JPEGQuality(ThumbQuality)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	return &Processed{Main: main.Bytes(), Thumb: thumb.Bytes()}, nil
}
