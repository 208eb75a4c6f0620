package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/handiism/episode-combiner/internal/combine"
)

var (
	errorPrefix   = color.New(color.FgRed).Sprint("✗")
	warningPrefix = color.New(color.FgYellow).Sprint("!")
	successPrefix = color.New(color.FgGreen).Sprint("✓")
	infoPrefix    = color.New(color.FgCyan).Sprint("›")
)

// eventPrinter writes manager events as prefixed lines. Events may arrive
// from several goroutines.
type eventPrinter struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool
}

func (p *eventPrinter) print(event combine.ProgressEvent) {
	if event.Level == combine.LevelVerbose && !p.verbose {
		return
	}

	prefix := " "
	switch event.Level {
	case combine.LevelError:
		prefix = errorPrefix
	case combine.LevelWarning:
		prefix = warningPrefix
	case combine.LevelSuccess:
		prefix = successPrefix
	case combine.LevelInfo:
		prefix = infoPrefix
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "%s %s\n", prefix, event.Message)
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
