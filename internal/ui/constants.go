// Package ui holds what the terminal panels share: their drawing area and
// the layout constants.
package ui

const (
	// ScrollMargin is how many rows stay visible above and below the
	// catalog cursor.
	ScrollMargin = 3

	// BorderHeight is the rows a framed panel spends on its border.
	BorderHeight = 2

	// PlayerBarHeight is the framed two-line bar at the bottom.
	PlayerBarHeight = 2 + BorderHeight

	// CatalogWidthDivisor gives the catalog 1/CatalogWidthDivisor of the
	// width when lyrics are shown beside it.
	CatalogWidthDivisor = 2

	// MinProgressBarWidth is the narrowest usable progress bar.
	MinProgressBarWidth = 5

	// MinSplitWidth is the narrowest terminal that shows the lyric panel.
	MinSplitWidth = 60
)
