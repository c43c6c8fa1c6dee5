// Package colors maps the three ResultLog outcomes the executor reports
// — Updated, Skipped, Failed — to a terminal color palette.
package colors

import "github.com/fatih/color"

var (
	UpdatedC = color.New(color.FgGreen)
	SkippedC = color.New(color.Faint)
	FailedC  = color.New(color.FgRed)
	FaintC   = color.New(color.Faint)
)

var (
	Updated = UpdatedC.Sprint
	Skipped = SkippedC.Sprint
	Failed  = FailedC.Sprint
	Faint   = FaintC.Sprint
)
