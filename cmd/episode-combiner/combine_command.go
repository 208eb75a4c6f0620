package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/handiism/episode-combiner/internal/combine"
	"github.com/handiism/episode-combiner/internal/logging"
	"github.com/handiism/episode-combiner/internal/progress"
)

var errEpisodesFailed = errors.New("episodes failed")

func newCombineCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "combine",
		Short: "Combine, tag and publish every episode of the show",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCombine(cmd, ctx, combine.RunOptions{})
		},
	}
}

func newHookCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "hook",
		Short: "Process only the first episode as a possible hook",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCombine(cmd, ctx, combine.RunOptions{FindHook: true})
		},
	}
}

func runCombine(cmd *cobra.Command, cc *commandContext, opts combine.RunOptions) error {
	settings, err := cc.ensureSettings()
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.NewFromSettings(settings, cc.verbose())
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closeLog()

	// Handle interrupts
	runCtx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(cmd.ErrOrStderr(), "\nInterrupted, cancelling...")
			cancel()
		case <-runCtx.Done():
		}
	}()

	out := cmd.OutOrStdout()
	printer := &eventPrinter{out: out, verbose: cc.verbose()}
	reporter := progress.NewReporter(out, progress.DefaultBarLength)

	manager := combine.NewManager(settings, logger, nil, nil, func(event combine.ProgressEvent) {
		if event.Level == combine.LevelProgress {
			reporter.Update(event.Label, event.Fraction)
			return
		}
		reporter.Finish()
		printer.print(event)
	})

	report, err := manager.Run(runCtx, opts)
	reporter.Finish()
	if err != nil {
		return err
	}

	if !report.OK() {
		fmt.Fprintln(out, reportTable(report))
		return fmt.Errorf("%d of %d %w: %v", len(report.Failed), len(report.Failed)+len(report.Published), errEpisodesFailed, report.FailedKeys())
	}

	fmt.Fprintf(out, "Published %d episodes in %s\n", len(report.Published), report.Duration.Round(time.Millisecond))
	return nil
}

func reportTable(report *combine.Report) string {
	type row struct {
		track  int
		values []string
	}
	rows := make([]row, 0, len(report.Published)+len(report.Failed))
	for _, ep := range report.Published {
		rows = append(rows, row{ep.Track, []string{strconv.Itoa(ep.Track), ep.Key, "published", "", ""}})
	}
	for _, e := range report.Failed {
		rows = append(rows, row{e.Track, []string{strconv.Itoa(e.Track), e.Key, "failed", string(e.Stage), e.Err.Error()}})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].track < rows[j].track })

	values := make([][]string, len(rows))
	for i, r := range rows {
		values[i] = r.values
	}

	return renderTable(
		[]string{"Track", "Key", "Status", "Stage", "Error"},
		values,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
	)
}
