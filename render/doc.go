// Package render turns grid state into something a host can show.
//
// Classify resolves a cell to exactly one Kind using a fixed priority:
// wall, source, destination, path, closed, opened, hover, unvisited. Each
// Kind has a display colour and an ASCII glyph; ASCII writes a whole frame
// followed by a summary line.
package render
