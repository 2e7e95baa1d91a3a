package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"mangasync/internal/anilist"
	"mangasync/internal/config"
	"mangasync/internal/library"
	"mangasync/internal/match"
	"mangasync/internal/search"
)

func newMatchCommand(cctx *commandContext) *cobra.Command {
	var bypassCache bool
	var limit int

	cmd := &cobra.Command{
		Use:   "match <export.json>",
		Short: "Match library entries against the AniList catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			entries, err := library.LoadExport(args[0])
			if err != nil {
				return err
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}

			results, err := matchEntries(cmd.Context(), cctx, entries, bypassCache)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(results))
			matched := 0
			for _, result := range results {
				confidence, title, field := "", "", ""
				if len(result.Candidates) > 0 {
					top := result.Candidates[0]
					confidence = strconv.FormatFloat(top.Confidence, 'f', 0, 64)
					title = displayTitle(top.Media, cfg.Matcher)
					field = top.MatchedField
				}
				if result.Status == match.StatusMatched {
					matched++
				}
				rows = append(rows, []string{
					result.Source.Title,
					string(result.Status),
					confidence,
					title,
					field,
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"TITLE", "STATUS", "CONFIDENCE", "MATCHED", "FIELD"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft}))
			fmt.Fprintf(out, "%d of %d entries matched\n", matched, len(results))
			return nil
		},
	}

	cmd.Flags().BoolVar(&bypassCache, "bypass-cache", false, "Force live catalog searches")
	cmd.Flags().IntVar(&limit, "limit", 0, "Match at most this many entries (0 = all)")
	return cmd
}

// matchEntries runs the search and match pipeline over the export.
// Search failures degrade that entry to pending instead of aborting
// the run.
func matchEntries(ctx context.Context, cctx *commandContext, entries []library.SourceEntry, bypassCache bool) ([]match.Result, error) {
	cfg, err := cctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := cctx.ensureLogger()
	if err != nil {
		return nil, err
	}
	client, err := cctx.newClient()
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(cfg.Matcher.CacheTTLMinutes) * time.Minute
	svc := search.NewService(client, ttl, cfg.AniList.Token, logger)
	matchCfg := match.FromMatcher(cfg.Matcher)

	results := make([]match.Result, 0, len(entries))
	for _, entry := range entries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		candidates, err := svc.SearchByTitle(ctx, entry.Title, search.Options{BypassCache: bypassCache})
		if err != nil {
			logger.Warn("catalog search failed",
				"title", entry.Title,
				"error", err)
			candidates = nil
		}
		results = append(results, match.FindBestMatches(entry, candidates, matchCfg))
	}
	return results, nil
}

func displayTitle(media anilist.Media, m config.Matcher) string {
	switch {
	case m.PreferEnglishTitles && media.Title.English != "":
		return media.Title.English
	case m.PreferRomajiTitles && media.Title.Romaji != "":
		return media.Title.Romaji
	case media.Title.Romaji != "":
		return media.Title.Romaji
	case media.Title.English != "":
		return media.Title.English
	}
	return media.Title.Native
}
