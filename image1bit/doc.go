// Package image1bit provides a 1-bit monochrome image format for small OLED
// and LCD dot-matrix displays.
//
// Pixels are packed horizontally, eight per byte, most significant bit first.
//
// Memory layout example for a 10-pixel row:
//
//	Pixels: 0 1 2 3 4 5 6 7 | 8 9
//	Values: 1 0 1 1 0 0 0 1 | 1 1
//	Bytes:  0xB1            | 0xC0
//	        (bits of the last byte past the row width are unused)
//
// This package provides:
//
// - Bit: A color type representing a lit (On) or dark (Off) pixel
// - BitModel: A color model for converting standard Go colors to Bit
// - HorizontalMSB: An image.Image implementation backed by packed rows
//
// Example usage:
//
//	// Create a 128x64 image
//	img := image1bit.NewHorizontalMSB(image.Rect(0, 0, 128, 64))
//
//	// Light a pixel
//	img.SetBit(10, 20, image1bit.On)
//
//	// Clear a rectangle
//	img.Fill(image.Rect(0, 0, 64, 8), image1bit.Off)
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(image1bit.On), image.Point{}, draw.Src)
package image1bit
