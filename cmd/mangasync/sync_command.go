package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"mangasync/internal/anilist"
	"mangasync/internal/config"
	"mangasync/internal/history"
	"mangasync/internal/library"
	"mangasync/internal/match"
	"mangasync/internal/syncer"
)

func newSyncCommand(cctx *commandContext) *cobra.Command {
	var bypassCache bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sync <export.json>",
		Short: "Push matched library entries to the AniList list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cctx.ensureLogger()
			if err != nil {
				return err
			}
			token := cfg.AniList.Token
			if token == "" {
				return errors.New("anilist token required: set anilist.token in the config or export ANILIST_TOKEN")
			}

			// One sync run at a time; concurrent runs would race the
			// shared rate limit and the history store.
			lock := flock.New(cfg.LockFilePath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return errors.New("another mangasync run is in progress")
			}
			defer lock.Unlock()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			entries, err := library.LoadExport(args[0])
			if err != nil {
				return err
			}
			client, err := cctx.newClient()
			if err != nil {
				return err
			}

			remote, err := client.FetchViewerList(ctx, token)
			if err != nil {
				return fmt.Errorf("fetch remote list: %w", err)
			}

			results, err := matchEntries(ctx, cctx, entries, bypassCache)
			if err != nil {
				return err
			}

			var updates []syncer.UpdateEntry
			pending := 0
			for _, result := range results {
				if result.Status != match.StatusMatched {
					pending++
					logger.Warn("entry left pending, not synced",
						"title", result.Source.Title,
						"status", string(result.Status))
					continue
				}
				updates = append(updates, buildUpdate(result.Source, *result.Selected, remote, cfg.Sync))
			}

			out := cmd.OutOrStdout()
			if dryRun {
				rows := make([][]string, 0, len(updates))
				for _, update := range updates {
					rows = append(rows, []string{
						update.Title,
						strconv.Itoa(update.MediaID),
						update.Status,
						formatProgress(update),
						formatMode(update),
					})
				}
				fmt.Fprintln(out, renderTable(out,
					[]string{"TITLE", "MEDIA ID", "STATUS", "PROGRESS", "MODE"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight, alignLeft}))
				fmt.Fprintf(out, "dry run: %d updates planned, %d pending entries skipped\n", len(updates), pending)
				return nil
			}

			engine := syncer.NewEngine(client, syncer.EngineOptions{
				NormalizeScores:  cfg.Sync.NormalizeScores,
				ServerErrorRetry: time.Duration(cfg.Sync.ServerErrorRetrySeconds) * time.Second,
			}, logger)
			orchestrator := syncer.NewOrchestrator(engine, syncer.RetryPolicy{
				MaxAttempts: cfg.Sync.MaxAttempts,
				Fallback:    time.Duration(cfg.Sync.RateLimitFallbackSeconds) * time.Second,
				MaxDelay:    5 * time.Minute,
			}, logger)

			report := orchestrator.SyncBatch(ctx, updates, token, func(current, total int, title string) {
				fmt.Fprintf(out, "[%d/%d] %s\n", current, total, title)
			})

			saveReport(ctx, cfg, logger, report)
			printReport(out, report, pending)
			if ctx.Err() != nil {
				return context.Canceled
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&bypassCache, "bypass-cache", false, "Force live catalog searches")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show planned updates without mutating the remote list")
	return cmd
}

// buildUpdate derives the outgoing update for one matched pair,
// carrying the remote entry as previous state when the list already
// knows the work.
func buildUpdate(entry library.SourceEntry, media anilist.Media, remote map[int]anilist.ListEntry, syncCfg config.Sync) syncer.UpdateEntry {
	update := syncer.UpdateEntry{
		MediaID:  media.ID,
		Title:    entry.Title,
		Status:   entry.Status.MediaListStatus(),
		Progress: syncer.Int(entry.ChaptersRead),
	}
	if entry.VolumesRead > 0 {
		update.ProgressVolumes = syncer.Int(entry.VolumesRead)
	}
	if entry.Score > 0 {
		update.Score = syncer.Float(entry.Score)
	}

	prev, known := remote[media.ID]
	if !known {
		return update
	}
	// Remote scores arrive on the 0-100 point format; previous values
	// are kept on the source's 0-10 scale so the diff compares like
	// with like.
	prevScore := prev.Score / 10
	update.Previous = &syncer.PreviousValues{
		Status:   prev.Status,
		Progress: prev.Progress,
		Score:    prevScore,
		Private:  prev.Private,
	}
	if entry.ChaptersRead-prev.Progress > syncCfg.IncrementalJumpThreshold {
		update.Metadata = &syncer.Metadata{
			UseIncrementalSync: true,
			TargetProgress:     entry.ChaptersRead,
		}
	}
	return update
}

func saveReport(ctx context.Context, cfg *config.Config, logger *slog.Logger, report *syncer.Report) {
	store, err := history.Open(cfg, nil)
	if err != nil {
		logger.Warn("history store unavailable", "error", err)
		return
	}
	defer store.Close()
	if err := store.Save(context.WithoutCancel(ctx), report); err != nil {
		logger.Warn("saving sync report failed", "error", err)
	}
}

func printReport(out io.Writer, report *syncer.Report, pending int) {
	fmt.Fprintf(out, "\nsynced %d of %d entries (%d failed, %d left pending)\n",
		report.SuccessfulUpdates, report.TotalEntries, report.FailedUpdates, pending)
	if len(report.Errors) == 0 {
		return
	}
	rows := make([][]string, 0, len(report.Errors))
	for _, e := range report.Errors {
		rows = append(rows, []string{strconv.Itoa(e.MediaID), e.Title, e.Message})
	}
	fmt.Fprintln(out, renderTable(out,
		[]string{"MEDIA ID", "TITLE", "ERROR"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft}))
}

func formatProgress(update syncer.UpdateEntry) string {
	if update.Progress == nil {
		return ""
	}
	progress := strconv.Itoa(*update.Progress)
	if update.Previous != nil {
		progress = strconv.Itoa(update.Previous.Progress) + " -> " + progress
	}
	return progress
}

func formatMode(update syncer.UpdateEntry) string {
	switch {
	case update.Metadata != nil && update.Metadata.UseIncrementalSync:
		return "incremental"
	case update.Previous == nil:
		return "create"
	}
	return "update"
}
