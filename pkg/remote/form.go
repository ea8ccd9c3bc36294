package remote

import (
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/sketchify/sketchify/pkg/errors"
	"github.com/sketchify/sketchify/pkg/params"
)

// Multipart field names of the render service.
const (
	FieldFile         = "file"
	FieldMedium       = "artStyle"
	FieldStyle        = "style"
	FieldBrush        = "brush"
	FieldSeed         = "seed"
	FieldIntensity    = "intensity"
	FieldStroke       = "stroke"
	FieldSmoothing    = "smoothing"
	FieldSkipHatching = "skipHatching"
	FieldColorize     = "colorize"
	FieldInvert       = "invert"
	FieldContrast     = "contrast"
	FieldSaturation   = "saturation"
	FieldHueShift     = "hueShift"
	FieldResolution   = "resolution"
	FieldAspect       = "aspect"
)

// Sizing controls how the service resizes the upload before rendering.
// A zero Resolution keeps the source size, capped by the service limit.
type Sizing struct {
	Resolution int
	Aspect     string
}

// writeFields appends every parameter field to mw. seed is the effective
// seed of the request.
func writeFields(mw *multipart.Writer, p params.Parameters, seed uint32, s Sizing) error {
	fields := []struct{ k, v string }{
		{FieldMedium, string(p.Medium)},
		{FieldStyle, string(p.Style)},
		{FieldBrush, string(p.Brush)},
		{FieldSeed, strconv.FormatUint(uint64(seed), 10)},
		{FieldIntensity, strconv.Itoa(p.Intensity)},
		{FieldStroke, strconv.Itoa(p.StrokeWeight)},
		{FieldSmoothing, strconv.Itoa(p.Smoothing)},
		{FieldSkipHatching, strconv.FormatBool(p.SkipHatching)},
		{FieldColorize, strconv.FormatBool(p.Colorize)},
		{FieldInvert, strconv.FormatBool(p.Invert)},
		{FieldContrast, strconv.FormatFloat(p.Contrast, 'g', -1, 64)},
		{FieldSaturation, strconv.FormatFloat(p.Saturation, 'g', -1, 64)},
		{FieldHueShift, strconv.Itoa(p.HueShift)},
		{FieldResolution, strconv.Itoa(s.Resolution)},
		{FieldAspect, s.Aspect},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.k, f.v); err != nil {
			return err
		}
	}
	return nil
}

// ParseFields builds parameters from form values as sent by [Client]. Empty
// fields keep their defaults; malformed values are INVALID_INPUT errors and
// unknown enum names carry their own codes. The returned parameters are
// deterministic with the submitted seed.
func ParseFields(get func(string) string) (params.Parameters, Sizing, error) {
	p := params.Default()
	var s Sizing
	var err error

	if p.Medium, err = params.ParseMedium(get(FieldMedium)); err != nil {
		return p, s, err
	}
	if p.Style, err = params.ParseStyle(get(FieldStyle)); err != nil {
		return p, s, err
	}
	if p.Brush, err = params.ParseBrush(get(FieldBrush)); err != nil {
		return p, s, err
	}

	ints := []struct {
		field string
		dst   *int
	}{
		{FieldIntensity, &p.Intensity},
		{FieldStroke, &p.StrokeWeight},
		{FieldSmoothing, &p.Smoothing},
		{FieldHueShift, &p.HueShift},
		{FieldResolution, &s.Resolution},
	}
	for _, f := range ints {
		if v := strings.TrimSpace(get(f.field)); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return p, s, errors.New(errors.ErrCodeInvalidInput, "%s: not an integer: %q", f.field, v)
			}
			*f.dst = n
		}
	}
	if s.Resolution < 0 {
		return p, s, errors.New(errors.ErrCodeInvalidInput, "%s must not be negative", FieldResolution)
	}

	floats := []struct {
		field string
		dst   *float64
	}{
		{FieldContrast, &p.Contrast},
		{FieldSaturation, &p.Saturation},
	}
	for _, f := range floats {
		if v := strings.TrimSpace(get(f.field)); v != "" {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return p, s, errors.New(errors.ErrCodeInvalidInput, "%s: not a number: %q", f.field, v)
			}
			*f.dst = x
		}
	}

	bools := []struct {
		field string
		dst   *bool
	}{
		{FieldSkipHatching, &p.SkipHatching},
		{FieldColorize, &p.Colorize},
		{FieldInvert, &p.Invert},
	}
	for _, f := range bools {
		*f.dst = strings.EqualFold(strings.TrimSpace(get(f.field)), "true")
	}

	if v := strings.TrimSpace(get(FieldSeed)); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return p, s, errors.New(errors.ErrCodeInvalidInput, "%s: not a 32-bit unsigned integer: %q", FieldSeed, v)
		}
		p.Seed = uint32(n)
	}
	p.Deterministic = true

	s.Aspect = strings.TrimSpace(get(FieldAspect))
	return p.Normalize(), s, nil
}
