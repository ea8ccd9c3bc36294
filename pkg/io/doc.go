// Package io decodes source photos and encodes finished sketches.
//
// # Import
//
// [Decode] accepts every format registered with the standard image package
// plus the extra decoders this package links in: PNG, JPEG, GIF, BMP, TIFF,
// WebP and TGA. [ImportImage] reads from a path and reports a missing file
// with the FILE_NOT_FOUND error code:
//
//	img, format, err := io.ImportImage("portrait.jpg")
//
// # Export
//
// [Encode] writes PNG, JPEG or WebP. The format is chosen explicitly or
// derived from a file extension with [FormatFromPath]:
//
//	f, _ := io.FormatFromPath("out.webp")
//	err := io.ExportImage("out.webp", bm.Image(), f, io.EncodeOptions{})
//
// WebP output is lossless (VP8L) through github.com/HugoSmits86/nativewebp.
//
// # Concurrency
//
// All functions are safe for concurrent use; none keep state.
package io
