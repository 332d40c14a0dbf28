// Package chord lays out a co-authorship network on a circle and renders
// it as SVG.
//
// # Layout
//
// Members are sorted by affiliation and then by paper count, and spaced
// evenly around the circle with a two-slot gap before each affiliation.
// Each member is labeled with its name and paper count, rotated to read
// outward; labels on the left half are flipped so they are never upside
// down. A colored arc at radius 0.95 marks each affiliation and a straight
// chord at radius 0.91 joins every pair that wrote together, with width
// proportional to the pair's count. Chords within one affiliation are grey
// and drawn first; chords across affiliations are black.
//
// Coordinates are in figure units with the circle of radius 1 at the
// origin and the view spanning ±1.25.
//
// # Rendering
//
//	l := chord.Compute(net)
//	svg := chord.RenderSVG(l)
package chord
