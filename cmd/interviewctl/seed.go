package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Maazpendari01/InterviewQi/internal/retrieval"
	mongorepo "github.com/Maazpendari01/InterviewQi/internal/retrieval/mongo"
)

func newSeedCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the embedded exemplar bank into MongoDB",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bank, err := retrieval.LoadBank()
			if err != nil {
				return err
			}

			counts := map[string]int{}
			for _, doc := range bank {
				counts[doc.Metadata.Category]++
			}
			categories := make([]string, 0, len(counts))
			for c := range counts {
				categories = append(categories, c)
			}
			sort.Strings(categories)
			for _, c := range categories {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %d exemplars\n", c, counts[c])
			}

			if v.GetBool("dry-run") {
				fmt.Fprintf(cmd.OutOrStdout(), "dry run: %d exemplars not written\n", len(bank))
				return nil
			}

			uri := v.GetString("mongo-uri")
			if uri == "" {
				return fmt.Errorf("MONGO_URI is required to seed exemplars")
			}
			// the mongo client reads its uri from the environment
			if err := os.Setenv("MONGO_URI", uri); err != nil {
				return err
			}

			logger, err := newLogger(v)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			client, err := mongorepo.NewClient(ctx)
			if err != nil {
				return fmt.Errorf("connecting to mongo: %w", err)
			}
			defer client.Disconnect(context.Background())

			repo, err := mongorepo.NewExemplarRepo(client)
			if err != nil {
				return err
			}
			written, err := repo.Upsert(ctx, bank)
			if err != nil {
				return fmt.Errorf("seeding exemplars: %w", err)
			}
			total, err := repo.Count(ctx)
			if err != nil {
				return err
			}

			logger.Info("seeded exemplars", zap.Int64("written", written), zap.Int64("total", total))
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d exemplars (%d in collection)\n", written, total)
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "only report what would be written")
	cmd.Flags().String("mongo-uri", "", "MongoDB connection string (default $MONGO_URI)")
	_ = v.BindPFlag("dry-run", cmd.Flags().Lookup("dry-run"))
	_ = v.BindPFlag("mongo-uri", cmd.Flags().Lookup("mongo-uri"))
	return cmd
}
