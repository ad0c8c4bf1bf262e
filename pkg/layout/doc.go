// Package layout turns field width hints into the concrete width policies
// used by renderers on a 12-column grid.
//
// Spans that do not divide the grid cleanly (5, 6, 7, 9, 10 and 11) are
// emitted as a percentage width reduced by 10%; the remaining spans map onto
// a "col-span-N" class. Strings that are neither numeric nor "col-span-<n>"
// pass through verbatim as a caller-controlled class.
package layout
