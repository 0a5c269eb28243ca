// Package raster provides the primitive image operators the illness pipelines
// are composed from. Every operator treats its input as read-only and returns
// a new *image.NRGBA with the same bounds.
//
// Channels are processed un-premultiplied in [0,1] and rounded once on the
// way back to 8 bits, so an operator with a zero amount reproduces its input
// exactly.
package raster
