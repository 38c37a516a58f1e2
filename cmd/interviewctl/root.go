package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Maazpendari01/InterviewQi/internal/repositories"
	"github.com/Maazpendari01/InterviewQi/internal/utils"
)

const app = "interviewctl"

// sqlitePrefix selects a local sqlite archive instead of postgres
const sqlitePrefix = "sqlite:"

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           app,
		Short:         "interviewctl manages the interview exemplar bank, archives and practice sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadConfigFile(v, cfgFile)
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "optional config file (default is ./interviewctl.yaml when present)")
	root.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	root.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	_ = v.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))
	_ = v.BindPFlag("json", root.PersistentFlags().Lookup("json"))

	_ = v.BindEnv("provider", "AI_PROVIDER")
	_ = v.BindEnv("mongo-uri", "MONGO_URI")
	_ = v.BindEnv("dsn", "DATABASE_DSN")
	v.SetDefault("provider", "gemini")

	root.AddCommand(newSeedCmd(v), newPracticeCmd(v), newExportCmd(v))
	return root
}

func loadConfigFile(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return nil
	}

	v.AddConfigPath(".")
	v.SetConfigName(app)
	if err := v.ReadInConfig(); err != nil {
		// the default file is optional
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}

func newLogger(v *viper.Viper) (*zap.Logger, error) {
	format, level := "console", "info"
	if v.GetBool("json") {
		format = "json"
	}
	if v.GetBool("debug") {
		level = "debug"
	}
	return utils.NewLogger(format, level)
}

// openArchive opens the session archive. dsn is a postgres DSN, or
// "sqlite:<path>" for a local file.
func openArchive(dsn string) (*repositories.SessionRepository, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database dsn is required (--dsn or DATABASE_DSN)")
	}

	var dialector gorm.Dialector
	if path, ok := strings.CutPrefix(dsn, sqlitePrefix); ok {
		dialector = sqlite.Open(path)
	} else {
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	repo := repositories.NewSessionRepository(db)
	if err := repo.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return repo, nil
}
