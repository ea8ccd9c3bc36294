package params

import (
	"math"
	"testing"
	"time"

	"github.com/sketchify/sketchify/pkg/errors"
)

func TestStylesCount(t *testing.T) {
	if got := len(Styles); got != 27 {
		t.Errorf("len(Styles) = %d, want 27", got)
	}
	total := 0
	for _, f := range Families {
		total += len(StylesIn(f))
	}
	if total != len(Styles) {
		t.Errorf("styles across families = %d, want %d", total, len(Styles))
	}
}

func TestNormalizeClamps(t *testing.T) {
	p := Default()
	p.Intensity = 99
	p.StrokeWeight = -4
	p.Smoothing = 11
	p.TextureOpacity = -1
	p.Contrast = math.NaN()
	p.Saturation = -2
	p.HueShift = 725
	p.Zoom = 0
	p.PanX = math.Inf(1)
	p.Medium = "crayon"
	p.Brush = "sponge"
	p.Texture = "silk"

	n := p.Normalize()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Intensity", n.Intensity, 10},
		{"StrokeWeight", n.StrokeWeight, 1},
		{"Smoothing", n.Smoothing, 10},
		{"TextureOpacity", n.TextureOpacity, 0},
		{"Contrast", n.Contrast, DefaultContrast},
		{"Saturation", n.Saturation, 0.0},
		{"HueShift", n.HueShift, 5},
		{"Zoom", n.Zoom, 1.0},
		{"PanX", n.PanX, 0.0},
		{"Medium", n.Medium, MediumPencil},
		{"Brush", n.Brush, BrushLine},
		{"Texture", n.Texture, TextureNone},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("Normalize().%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	if p.Intensity != 99 {
		t.Error("Normalize must not modify the receiver")
	}
}

func TestNormalizeKeepsUnknownStyle(t *testing.T) {
	p := Default()
	p.Style = "mystery"
	if got := p.Normalize().Style; got != "mystery" {
		t.Errorf("Normalize().Style = %q, want unchanged", got)
	}
}

func TestEffectiveSeed(t *testing.T) {
	now := time.Unix(1700000000, 123456789)

	p := Default()
	p.Seed = 0
	if got := p.EffectiveSeed(now); got != 0 {
		t.Errorf("deterministic seed 0 = %d, want 0", got)
	}

	p.Deterministic = false
	a := p.EffectiveSeed(now)
	b := p.EffectiveSeed(now.Add(time.Millisecond))
	if a == b {
		t.Errorf("non-deterministic seeds should differ across time, both %d", a)
	}
}

func TestSameUpstream(t *testing.T) {
	a := Default()
	b := a
	b.Zoom, b.PanX, b.PanY = 2, 10, -5
	b.Texture, b.TextureOpacity = TextureFilm, 8
	if !a.SameUpstream(b) {
		t.Error("zoom/pan/texture changes should be view-only")
	}

	c := a
	c.Intensity = 9
	if a.SameUpstream(c) {
		t.Error("intensity change should not be view-only")
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    Style
		wantErr bool
	}{
		{"contour", StyleContour, false},
		{"Hatching", StyleHatching, false},
		{" inkwash ", StyleInkWash, false},
		{"", StyleDefault, false},
		{"line", StyleDefault, false},
		{"default", StyleDefault, false},
		{"vangogh", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStyle(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStyle(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidStyle) {
			t.Errorf("ParseStyle(%q) code = %v, want %v", tt.in, errors.GetCode(err), errors.ErrCodeInvalidStyle)
		}
		if got != tt.want {
			t.Errorf("ParseStyle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseEnums(t *testing.T) {
	if m, err := ParseMedium("PASTEL"); err != nil || m != MediumPastel {
		t.Errorf("ParseMedium(PASTEL) = %q, %v", m, err)
	}
	if _, err := ParseMedium("crayon"); !errors.Is(err, errors.ErrCodeInvalidMedium) {
		t.Errorf("ParseMedium(crayon) error = %v, want INVALID_MEDIUM", err)
	}
	if b, err := ParseBrush("inkwash"); err != nil || b != BrushInkWash {
		t.Errorf("ParseBrush(inkwash) = %q, %v", b, err)
	}
	if _, err := ParseBrush("sponge"); !errors.Is(err, errors.ErrCodeInvalidBrush) {
		t.Errorf("ParseBrush(sponge) error = %v, want INVALID_BRUSH", err)
	}
	if x, err := ParseTexture("Weave"); err != nil || x != TextureWeave {
		t.Errorf("ParseTexture(Weave) = %q, %v", x, err)
	}
	if _, err := ParseTexture("silk"); !errors.Is(err, errors.ErrCodeInvalidTexture) {
		t.Errorf("ParseTexture(silk) error = %v, want INVALID_TEXTURE", err)
	}
}
