// Package effects implements the post-effect chain applied to a rendered
// sketch.
//
// The chain runs eight stages in a fixed order, each mutating one
// *raster.Bitmap in place and never changing its size:
//
//  1. [Medium]: dark-pixel dilation, tone delta and grain per drawing medium
//  2. [Brush]: hatch, crosshatch, charcoal or ink wash overlays
//  3. [Colorize]: restore the source hue under the sketch's lightness
//  4. [Adjust]: contrast, hue shift and saturation
//  5. [Invert]
//  6. [Smooth]: repeated 3×3 box blur
//  7. [ZoomPan]: scale about the center, then translate
//  8. [Texture]: procedural paper texture multiplied on top
//
// The order matters: each stage assumes the tonal range the previous stage
// leaves behind. [Chain] runs the stages with cancellation checks and
// observability hooks, and splits at the zoom stage so a caller can cache the
// pre-zoom composite and rerun only stages 7 and 8 when the view changes.
package effects
