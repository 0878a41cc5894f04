// Package charts draws the two PNG dashboards with gonum/plot.
//
// Each dashboard is a grid of independent plots aligned on one vgimg canvas.
// Inputs are frame.Tables produced by the visualizer queries; every input must
// be non-empty.
package charts
