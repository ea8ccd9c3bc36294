package params

import (
	"slices"
	"strings"

	"github.com/sketchify/sketchify/pkg/errors"
)

// =============================================================================
// Styles
// =============================================================================

// Style identifies a rendering strategy.
type Style string

// Family groups styles that share an algorithmic shape.
type Family string

// Style families.
const (
	FamilyThreshold Family = "threshold"
	FamilyTonal     Family = "tonal"
	FamilyMarks     Family = "marks"
	FamilyLayered   Family = "layered"
)

// Style identifiers.
const (
	StyleDefault Style = "default"

	StyleContour       Style = "contour"
	StyleLineArt       Style = "lineart"
	StyleMinimalist    Style = "minimalist"
	StyleArchitectural Style = "architectural"
	StyleCrossContour  Style = "crosscontour"
	StyleAcademic      Style = "academic"
	StylePhotorealism  Style = "photorealism"

	StyleTonalPencil      Style = "tonalpencil"
	StyleCharcoal         Style = "charcoal"
	StyleGraphitePortrait Style = "graphiteportrait"
	StyleCartoon          Style = "cartoon"

	StyleHatching      Style = "hatching"
	StyleCrossHatching Style = "crosshatching"
	StyleStippling     Style = "stippling"
	StyleScribble      Style = "scribble"
	StyleBlindContour  Style = "blindcontour"
	StyleGesture       Style = "gesture"
	StyleDryBrush      Style = "drybrush"
	StyleFashion       Style = "fashion"

	StyleComic       Style = "comic"
	StyleMixedMedia  Style = "mixedmedia"
	StyleOilPainting Style = "oilpainting"
	StyleWatercolor  Style = "watercolor"
	StyleEtching     Style = "etching"
	StyleInkWash     Style = "inkwash"
	StyleUrban       Style = "urban"
	StyleGlitch      Style = "glitch"
)

// StyleInfo describes one selectable style.
type StyleInfo struct {
	ID          Style
	Family      Family
	Description string
}

// Styles lists every selectable style in display order.
var Styles = []StyleInfo{
	{StyleContour, FamilyThreshold, "Clean binary outlines of the strongest edges"},
	{StyleLineArt, FamilyThreshold, "Anti-aliased outlines with a soft cutoff band"},
	{StyleMinimalist, FamilyThreshold, "Only the most prominent contours"},
	{StyleArchitectural, FamilyThreshold, "Dense precise linework"},
	{StyleCrossContour, FamilyThreshold, "Soft outlines crossed by tinted contour lines"},
	{StyleAcademic, FamilyThreshold, "Soft outlines with restrained block shading"},
	{StylePhotorealism, FamilyThreshold, "Pen and ink lines over a faint tone"},

	{StyleTonalPencil, FamilyTonal, "S-curve pencil shading deepened at edges"},
	{StyleCharcoal, FamilyTonal, "Gamma-mapped charcoal tone with smudged edge marks"},
	{StyleGraphitePortrait, FamilyTonal, "Light graphite tone with pencil edge lines"},
	{StyleCartoon, FamilyTonal, "Posterized tone bands with bold outlines"},

	{StyleHatching, FamilyMarks, "Diagonal hatch lines gated by tone"},
	{StyleCrossHatching, FamilyMarks, "Two perpendicular hatch families"},
	{StyleStippling, FamilyMarks, "Dots sized by darkness and edge strength"},
	{StyleScribble, FamilyMarks, "Loose looping scribbles in dark regions"},
	{StyleBlindContour, FamilyMarks, "Wandering continuous strokes"},
	{StyleGesture, FamilyMarks, "Quick flowing strokes along edges"},
	{StyleDryBrush, FamilyMarks, "Broken textured diagonal strokes"},
	{StyleFashion, FamilyMarks, "Crisp outlines with elongated curved strokes"},

	{StyleComic, FamilyLayered, "Ink outlines with spot blacks in shadow"},
	{StyleMixedMedia, FamilyLayered, "Wash, blocks and rings combined"},
	{StyleOilPainting, FamilyLayered, "Bold tonal masses with painterly dabs"},
	{StyleWatercolor, FamilyLayered, "Pen lines over soft washes"},
	{StyleEtching, FamilyLayered, "Fine crosshatched engraving lines"},
	{StyleInkWash, FamilyLayered, "Diluted ink washes around soft lines"},
	{StyleUrban, FamilyLayered, "Loose lines with tinted overlay wash"},
	{StyleGlitch, FamilyLayered, "Noisy lines with displaced scanlines"},
}

// Info returns the description of s, if it is a known style.
func (s Style) Info() (StyleInfo, bool) {
	i := slices.IndexFunc(Styles, func(info StyleInfo) bool { return info.ID == s })
	if i < 0 {
		return StyleInfo{}, false
	}
	return Styles[i], true
}

// Valid reports whether s is the default style or a listed one.
func (s Style) Valid() bool {
	if s == StyleDefault {
		return true
	}
	_, ok := s.Info()
	return ok
}

// StylesIn returns the styles of one family.
func StylesIn(f Family) []StyleInfo {
	var out []StyleInfo
	for _, s := range Styles {
		if s.Family == f {
			out = append(out, s)
		}
	}
	return out
}

// Families lists the style families in display order.
var Families = []Family{FamilyThreshold, FamilyTonal, FamilyMarks, FamilyLayered}

// ParseStyle parses a style identifier, ignoring case.
// "line" is accepted as an alias of the default style.
func ParseStyle(s string) (Style, error) {
	v := Style(strings.ToLower(strings.TrimSpace(s)))
	if v == "" || v == "line" {
		return StyleDefault, nil
	}
	if !v.Valid() {
		return "", errors.New(errors.ErrCodeInvalidStyle, "unknown style %q", s)
	}
	return v, nil
}

// =============================================================================
// Media
// =============================================================================

// Medium selects the drawing medium emulation.
type Medium string

// Media.
const (
	MediumPencil Medium = "pencil"
	MediumInk    Medium = "ink"
	MediumMarker Medium = "marker"
	MediumPen    Medium = "pen"
	MediumPastel Medium = "pastel"
)

// Media lists every medium.
var Media = []Medium{MediumPencil, MediumInk, MediumMarker, MediumPen, MediumPastel}

// Valid reports whether m is a known medium.
func (m Medium) Valid() bool { return slices.Contains(Media, m) }

// ParseMedium parses a medium identifier, ignoring case.
func ParseMedium(s string) (Medium, error) {
	v := Medium(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return MediumPencil, nil
	}
	if !v.Valid() {
		return "", errors.New(errors.ErrCodeInvalidMedium, "unknown medium %q (must be one of: %s)", s, join(Media))
	}
	return v, nil
}

// =============================================================================
// Brushes
// =============================================================================

// Brush selects the brush overlay.
type Brush string

// Brushes.
const (
	BrushLine       Brush = "line"
	BrushHatch      Brush = "hatch"
	BrushCrosshatch Brush = "crosshatch"
	BrushCharcoal   Brush = "charcoal"
	BrushInkWash    Brush = "inkWash"
)

// Brushes lists every brush.
var Brushes = []Brush{BrushLine, BrushHatch, BrushCrosshatch, BrushCharcoal, BrushInkWash}

// Valid reports whether b is a known brush.
func (b Brush) Valid() bool { return slices.Contains(Brushes, b) }

// ParseBrush parses a brush identifier, ignoring case.
func ParseBrush(s string) (Brush, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return BrushLine, nil
	}
	for _, b := range Brushes {
		if strings.EqualFold(string(b), t) {
			return b, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidBrush, "unknown brush %q (must be one of: %s)", s, join(Brushes))
}

// =============================================================================
// Textures
// =============================================================================

// Texture selects the procedural overlay texture.
type Texture string

// Textures.
const (
	TextureNone  Texture = "none"
	TexturePaper Texture = "paper"
	TextureRough Texture = "rough"
	TextureFilm  Texture = "film"
	TextureWeave Texture = "weave"
)

// Textures lists every texture.
var Textures = []Texture{TextureNone, TexturePaper, TextureRough, TextureFilm, TextureWeave}

// Valid reports whether t is a known texture.
func (t Texture) Valid() bool { return slices.Contains(Textures, t) }

// ParseTexture parses a texture identifier, ignoring case.
func ParseTexture(s string) (Texture, error) {
	v := Texture(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return TextureNone, nil
	}
	if !v.Valid() {
		return "", errors.New(errors.ErrCodeInvalidTexture, "unknown texture %q (must be one of: %s)", s, join(Textures))
	}
	return v, nil
}

func join[T ~string](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
