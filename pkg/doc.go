// Package pkg holds the sketchify libraries.
//
// # Overview
//
// Sketchify turns a photograph into a hand-drawn looking sketch. The
// packages are layered bottom-up:
//
//  1. [raster], [rng], [params] - framebuffer, seeded randomness and the
//     immutable parameter set of one render
//  2. [edge], [blend], [paint] - grayscale and Sobel maps, blend modes and
//     the stroke primitives every style draws with
//  3. [styles], [effects] - the style strategies and the post-effect chain
//  4. [compositor] - owns the working buffers for one source image and runs
//     edge detection, style and chain with supersede semantics
//  5. [pipeline] - decode, render (locally or through [remote]), encode and
//     cache; shared by the CLI and [api]
//
// # Architecture
//
//	source image bytes
//	      ↓
//	  [io] decode, [compositor].Prepare (fit / cover crop)
//	      ↓
//	  [edge] grayscale + Sobel
//	      ↓
//	  [styles] strategy for params.Style
//	      ↓
//	  [effects] chain (smoothing … zoom/pan, texture)
//	      ↓
//	  [io] encode PNG / JPEG / WebP, stored in [cache]
//
// Supporting packages: [errors] (coded errors), [observability] (hooks for
// timings and cache events) and [buildinfo] (version stamping).
package pkg
