package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mangasync/internal/config"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}

			if err := config.WriteSample(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set anilist.token (or export ANILIST_TOKEN) before syncing.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "show",
		Short:       "Print the resolved configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				if root := cmd.Root(); root != nil {
					path, _ = root.PersistentFlags().GetString("config")
				}
			}
			cfg, resolvedPath, exists, err := config.Load(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if exists {
				fmt.Fprintf(out, "config file: %s\n", resolvedPath)
			} else {
				fmt.Fprintf(out, "config file: %s (not found, using defaults)\n", resolvedPath)
			}

			token := "(unset)"
			if cfg.AniList.Token != "" {
				token = "(set)"
			}
			rows := [][]string{
				{"paths.state_dir", cfg.Paths.StateDir},
				{"paths.log_dir", cfg.Paths.LogDir},
				{"anilist.base_url", cfg.AniList.BaseURL},
				{"anilist.token", token},
				{"matcher.confidence_threshold", fmt.Sprintf("%g", cfg.Matcher.ConfidenceThreshold)},
				{"matcher.max_matches", fmt.Sprintf("%d", cfg.Matcher.MaxMatches)},
				{"sync.incremental_jump_threshold", fmt.Sprintf("%d", cfg.Sync.IncrementalJumpThreshold)},
				{"sync.max_attempts", fmt.Sprintf("%d", cfg.Sync.MaxAttempts)},
				{"logging.format", cfg.Logging.Format},
				{"logging.level", cfg.Logging.Level},
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"KEY", "VALUE"},
				rows,
				[]columnAlignment{alignLeft, alignLeft}))
			return nil
		},
	}
}
