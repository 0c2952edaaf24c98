// Package color paints task attributes for terminal output. Coloring follows
// fatih/color, which honours NO_COLOR and disables itself off a TTY.
package color

import (
	fcolor "github.com/fatih/color"
)

var (
	inProgress    = fcolor.New(fcolor.FgBlue)
	pendingReview = fcolor.New(fcolor.FgYellow)
	returned      = fcolor.New(fcolor.FgRed, fcolor.Bold)
	completed     = fcolor.New(fcolor.FgGreen)

	high = fcolor.New(fcolor.FgHiRed)
	low  = fcolor.New(fcolor.FgHiBlack)

	muted = fcolor.New(fcolor.Faint)
	label = fcolor.New(fcolor.FgCyan)
)

// Status colors a task status by workflow stage. Unknown values pass through.
func Status(s string) string {
	switch s {
	case "In Progress":
		return inProgress.Sprint(s)
	case "Pending Review":
		return pendingReview.Sprint(s)
	case "Returned":
		return returned.Sprint(s)
	case "Completed":
		return completed.Sprint(s)
	}
	return s
}

func Priority(p string) string {
	switch p {
	case "High":
		return high.Sprint(p)
	case "Low":
		return low.Sprint(p)
	}
	return p
}

func Muted(s string) string {
	return muted.Sprint(s)
}

func Label(s string) string {
	return label.Sprint(s)
}

// Disable turns coloring off for the whole process.
func Disable() {
	fcolor.NoColor = true
}
