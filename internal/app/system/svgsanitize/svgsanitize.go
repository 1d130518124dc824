// Package svgsanitize cleans uploaded SVG markup before it is stored.
// It uses bluemonday with an SVG allowlist to strip scripts, event handler
// attributes, and embedding elements while preserving the drawing itself.
package svgsanitize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultMaxBytes is the upload size cap applied when the caller does not
// configure one.
const DefaultMaxBytes = 50 * 1024

// Sanitization errors.
var (
	ErrTooLarge = errors.New("svg exceeds the maximum allowed size")
	ErrNotSVG   = errors.New("content is not an svg document")
)

var (
	// policy is the shared bluemonday policy for sanitizing SVG markup.
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// svgElements are the drawing and structure elements kept by the policy.
// Scripting and embedding elements (script, foreignObject, iframe, embed,
// object, use with external refs) are intentionally absent.
var svgElements = []string{
	"svg", "g", "defs", "symbol", "title", "desc",
	"path", "rect", "circle", "ellipse", "line", "polyline", "polygon",
	"text", "tspan",
	"linearGradient", "radialGradient", "stop",
	"clipPath", "mask", "pattern", "marker",
}

// svgAttrs are presentation and geometry attributes allowed on any kept
// element. Event handler attributes (on*) are rejected by the allowlist
// simply by not being on it.
var svgAttrs = []string{
	"id", "class",
	"viewBox", "preserveAspectRatio", "xmlns", "version",
	"width", "height", "x", "y", "x1", "y1", "x2", "y2",
	"cx", "cy", "r", "rx", "ry", "d", "points",
	"fill", "fill-rule", "fill-opacity",
	"stroke", "stroke-width", "stroke-linecap", "stroke-linejoin",
	"stroke-dasharray", "stroke-dashoffset", "stroke-opacity", "stroke-miterlimit",
	"opacity", "transform", "clip-path", "clip-rule", "mask",
	"offset", "stop-color", "stop-opacity", "gradientUnits", "gradientTransform",
	"patternUnits", "markerWidth", "markerHeight", "refX", "refY", "orient",
	"font-size", "font-family", "font-weight", "text-anchor",
	"dominant-baseline", "dx", "dy",
	"aria-hidden", "role", "focusable",
}

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.NewPolicy()
		policy.AllowElements(svgElements...)
		policy.AllowAttrs(svgAttrs...).Globally()
	})
	return policy
}

var svgOpenTag = regexp.MustCompile(`(?is)<svg[\s>]`)

// Sanitizer cleans SVG uploads against a configurable size cap.
type Sanitizer struct {
	maxBytes int
}

// New creates a Sanitizer. A zero or negative maxBytes falls back to
// DefaultMaxBytes.
func New(maxBytes int) *Sanitizer {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Sanitizer{maxBytes: maxBytes}
}

// Sanitize validates and cleans an uploaded SVG. The size cap applies to
// the raw upload, before any markup is stripped. The returned markup keeps
// only allowlisted drawing elements and attributes.
func (s *Sanitizer) Sanitize(raw string) (string, error) {
	if len(raw) > s.maxBytes {
		return "", fmt.Errorf("%w: %d bytes, max %d", ErrTooLarge, len(raw), s.maxBytes)
	}
	if !svgOpenTag.MatchString(raw) {
		return "", ErrNotSVG
	}

	clean := getPolicy().Sanitize(raw)
	if strings.TrimSpace(clean) == "" || !svgOpenTag.MatchString(clean) {
		return "", ErrNotSVG
	}
	return clean, nil
}

// Sanitize cleans SVG markup using the default size cap.
func Sanitize(raw string) (string, error) {
	return New(0).Sanitize(raw)
}
