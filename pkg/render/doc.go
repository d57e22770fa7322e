// Package render converts parsed graphs into visual output formats.
//
// [ToDOT] produces Graphviz DOT text for a graph; [RenderSVG] and
// [RenderPNG] rasterize that DOT via the embedded Graphviz engine. Edge
// labels from the diagram become DOT edge labels, and drawn lengths become
// the len hint so that the rendered layout loosely resembles the drawing's
// proportions.
package render
