package newsletter

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/image/draw"
)

// Inline image compression policy.
const (
	maxInlineWidth = 1000 // px, downscale wider images
	jpegQuality    = 75
)

// headerImageKeys are the fixed branding images referenced by relative path
// instead of being embedded inline.
var headerImageKeys = []string{
	"college_logo",
	"org_logo",
	"accreditation_badge",
	"vision",
}

// ImageKind discriminates how a logical image key was resolved.
type ImageKind int

const (
	// ImageNotFound means the key has no usable backing file.
	ImageNotFound ImageKind = iota
	// ImagePath means the key resolves to a relative file path reference.
	ImagePath
	// ImageInline means the key resolves to a base64 payload.
	ImageInline
)

// ImageResolution is the outcome of resolving one logical image key.
// Exactly one of Path or Payload is set, matching Kind.
type ImageResolution struct {
	Kind    ImageKind
	Path    string // relative path, forward slashes (ImagePath)
	Payload string // base64-encoded bytes (ImageInline)
	MIME    string // e.g. "image/jpeg" (ImageInline)
}

// IsPath reports whether the image resolved to a relative file path.
func (r ImageResolution) IsPath() bool { return r.Kind == ImagePath }

// IsInline reports whether the image resolved to an inline payload.
func (r ImageResolution) IsInline() bool { return r.Kind == ImageInline }

// DataURI renders an inline resolution as a data: URI for embedding.
func (r ImageResolution) DataURI() string {
	if r.Kind != ImageInline {
		return ""
	}
	return "data:" + r.MIME + ";base64," + r.Payload
}

// imageResolver maps logical image keys to path references or inline
// payloads. Missing or unreadable images resolve to ImageNotFound; the
// resolver never fails a generation run.
type imageResolver interface {
	Resolve(assetDir string, imagePaths map[string]string) map[string]ImageResolution
}

// staticImageResolver prefers relative path references for the fixed header
// images and inlines everything else through an imageEncoder.
type staticImageResolver struct {
	encoder imageEncoder
}

var _ imageResolver = (*staticImageResolver)(nil)

func newImageResolver() *staticImageResolver {
	return &staticImageResolver{encoder: &resizingEncoder{maxWidth: maxInlineWidth, quality: jpegQuality}}
}

// Resolve maps the header keys plus the caller-supplied keys. A key in the
// header set is never also produced inline: the path reference wins.
func (r *staticImageResolver) Resolve(assetDir string, imagePaths map[string]string) map[string]ImageResolution {
	resolved := make(map[string]ImageResolution, len(headerImageKeys)+len(imagePaths))

	for _, key := range headerImageKeys {
		rel := path.Join("static", "images", key+".png")
		abs := filepath.Join(assetDir, "static", "images", key+".png")
		if fileExists(abs) {
			resolved[key] = ImageResolution{Kind: ImagePath, Path: rel}
		}
	}

	for key, p := range imagePaths {
		if resolved[key].Kind == ImagePath {
			continue
		}
		if !fileExists(p) {
			continue
		}
		payload, mime, err := r.encoder.Encode(p)
		if err != nil {
			// Unreadable or corrupt image: degrade to "no image shown".
			continue
		}
		resolved[key] = ImageResolution{Kind: ImageInline, Payload: payload, MIME: mime}
	}

	return resolved
}

// imageEncoder turns an image file into a text-safe inline payload.
type imageEncoder interface {
	Encode(path string) (payload, mime string, err error)
}

// resizingEncoder decodes, downscales, and re-encodes images before
// base64-encoding them. Sources the decoder does not recognize are embedded
// verbatim instead.
type resizingEncoder struct {
	maxWidth int
	quality  int
}

var _ imageEncoder = (*resizingEncoder)(nil)

// Encode loads one image and produces its base64 payload. Images wider than
// maxWidth are downscaled with a Catmull-Rom filter, preserving aspect
// ratio. PNG sources are re-encoded as optimized PNG to keep transparency;
// everything else becomes JPEG at the configured quality.
func (e *resizingEncoder) Encode(p string) (string, string, error) {
	raw, err := os.ReadFile(p) // #nosec G304 -- image paths are caller-provided by design
	if err != nil {
		return "", "", err
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if errors.Is(err, image.ErrFormat) {
		// No decoder for this format: embed the raw bytes untouched.
		return base64.StdEncoding.EncodeToString(raw), http.DetectContentType(raw), nil
	}
	if err != nil {
		return "", "", fmt.Errorf("decoding %s: %w", p, err)
	}

	img = downscale(img, e.maxWidth)

	var buf bytes.Buffer
	mime := "image/jpeg"
	if format == "png" {
		mime = "image/png"
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(&buf, img)
	} else {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.quality})
	}
	if err != nil {
		return "", "", fmt.Errorf("encoding %s: %w", p, err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), mime, nil
}

// downscale resizes img to maxWidth if it is wider, preserving aspect ratio.
func downscale(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxWidth {
		return img
	}
	newH := int(math.Round(float64(maxWidth) * float64(h) / float64(w)))
	if newH < 1 {
		newH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// rawEncoder embeds file bytes verbatim, with no resize or compression.
// Selected via WithRawImages.
type rawEncoder struct{}

var _ imageEncoder = (*rawEncoder)(nil)

func (rawEncoder) Encode(p string) (string, string, error) {
	raw, err := os.ReadFile(p) // #nosec G304 -- image paths are caller-provided by design
	if err != nil {
		return "", "", err
	}
	return base64.StdEncoding.EncodeToString(raw), http.DetectContentType(raw), nil
}

// fileExists reports whether path exists and is a regular file.
func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
