// Package render draws one frame per access event from the frame states the
// simulator produces. Two interchangeable sinks share the same layout:
// Raster (fogleman/gg, PNG frames for video encoding or numbered files) and
// Vector (ajstarks/svgo, one SVG file per frame). VideoEncoder pipes raster
// frames into an external ffmpeg process for MP4 output.
package render
