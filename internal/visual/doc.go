// Package visual runs the visualizer query set and turns its results into the
// two dashboard images and the analysis workbook.
package visual
