package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutExtraWideWidth is the threshold for extra-wide layouts.
	LayoutExtraWideWidth = 160
)

const (
	// ActivityRows is how many recent attempts the activity box shows.
	ActivityRows = 4

	// minPaneHeight keeps the package panes usable on short terminals.
	minPaneHeight = 5

	// inputBoxHeight is one line of input plus its border.
	inputBoxHeight = 3
)

// DefaultRefreshInterval is how often the UI re-reads the session store.
const DefaultRefreshInterval = 500 * time.Millisecond
