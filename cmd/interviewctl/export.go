package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Maazpendari01/InterviewQi/internal/jobs"
)

func newExportCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export completed interviews to JSONL tuning data once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(v)
			if err != nil {
				return err
			}
			defer logger.Sync()

			repo, err := openArchive(v.GetString("dsn"))
			if err != nil {
				return err
			}

			job := jobs.NewTranscriptExporterJob(repo, &jobs.ExporterConfig{
				ExportDir:     v.GetString("out"),
				ExportEnabled: true,
				BatchSize:     v.GetInt("batch-size"),
			}, logger)

			result, err := job.RunExport(cmd.Context())
			if err != nil {
				return err
			}

			if result.File == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%d sessions processed, nothing to write\n", result.Sessions)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d sessions, %d samples written to %s\n", result.Sessions, result.Samples, result.File)
			return nil
		},
	}

	cmd.Flags().String("dsn", "", "archive database: postgres DSN or sqlite:<path> (default $DATABASE_DSN)")
	cmd.Flags().String("out", "./exports", "directory for JSONL files")
	cmd.Flags().Int("batch-size", 0, "maximum sessions per run, 0 for all")
	_ = v.BindPFlag("dsn", cmd.Flags().Lookup("dsn"))
	_ = v.BindPFlag("out", cmd.Flags().Lookup("out"))
	_ = v.BindPFlag("batch-size", cmd.Flags().Lookup("batch-size"))
	return cmd
}
