// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ManuGH/epg365/internal/jobs"
)

// renderSummary lists programmes per channel followed by the totals.
func renderSummary(report *jobs.Report, output string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(output)
	tw.AppendHeader(table.Row{"Channel", "ID", "Programmes"})
	for _, c := range report.PerChannel {
		tw.AppendRow(table.Row{c.Name, c.ID, strconv.Itoa(c.Programmes)})
	}
	tw.AppendFooter(table.Row{
		"Total",
		fmt.Sprintf("%d channels", report.Channels),
		strconv.Itoa(report.Programmes),
	})
	if n := len(report.Skips); n > 0 {
		byStage := report.SkipsByStage()
		tw.AppendFooter(table.Row{
			"Skipped",
			fmt.Sprintf("listing %d, description %d, programme %d",
				byStage[jobs.StageListing], byStage[jobs.StageDescription], byStage[jobs.StageProgramme]),
			strconv.Itoa(n),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	return tw.Render()
}
