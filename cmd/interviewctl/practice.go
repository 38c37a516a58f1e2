package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Maazpendari01/InterviewQi/internal/interview"
	"github.com/Maazpendari01/InterviewQi/internal/llm"
	"github.com/Maazpendari01/InterviewQi/internal/models"
	"github.com/Maazpendari01/InterviewQi/internal/prompts"
	"github.com/Maazpendari01/InterviewQi/internal/retrieval"
	"github.com/Maazpendari01/InterviewQi/internal/sessions"
)

var errQuit = errors.New("practice interrupted")

// practiceIO is the candidate side of a terminal interview
type practiceIO interface {
	SelectCategory() (string, error)
	ReadAnswer(questionNumber int) (string, error)
}

type terminalIO struct{}

func (terminalIO) SelectCategory() (string, error) {
	sel := promptui.Select{
		Label: "Interview category",
		Items: models.SupportedCategoriesList(),
	}
	_, category, err := sel.Run()
	return category, promptErr(err)
}

func (terminalIO) ReadAnswer(questionNumber int) (string, error) {
	p := promptui.Prompt{
		Label: fmt.Sprintf("Answer %d", questionNumber),
		Validate: func(input string) error {
			if utf8.RuneCountInString(strings.TrimSpace(input)) < models.MinAnswerLength {
				return fmt.Errorf("answer must be at least %d characters", models.MinAnswerLength)
			}
			return nil
		},
	}
	answer, err := p.Run()
	return answer, promptErr(err)
}

func promptErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return errQuit
	}
	return err
}

func newPracticeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Run an interview in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(v)
			if err != nil {
				return err
			}
			defer logger.Sync()

			provider, err := llm.NewProvider(v.GetString("provider"))
			if err != nil {
				return err
			}
			promptManager, err := prompts.NewPromptManager()
			if err != nil {
				return err
			}
			index, err := retrieval.NewDefaultIndex()
			if err != nil {
				return err
			}

			store := sessions.NewMemoryStore(24 * time.Hour)
			defer store.Close()
			manager := sessions.NewManager(interview.NewController(index, provider, promptManager, logger), store, nil, logger)

			err = runPractice(cmd.Context(), cmd.OutOrStdout(), manager, terminalIO{}, v.GetString("category"), v.GetString("difficulty"))
			if errors.Is(err, errQuit) {
				fmt.Fprintln(cmd.OutOrStdout(), "\nInterview abandoned.")
				return nil
			}
			if err != nil {
				logger.Debug("practice failed", zap.Error(err))
			}
			return err
		},
	}

	cmd.Flags().String("category", "", "coding, system_design or behavioral (prompted when empty)")
	cmd.Flags().String("difficulty", models.DefaultDifficulty, "easy, medium or hard")
	_ = v.BindPFlag("category", cmd.Flags().Lookup("category"))
	_ = v.BindPFlag("difficulty", cmd.Flags().Lookup("difficulty"))
	return cmd
}

// runPractice drives one interview to its end
func runPractice(ctx context.Context, out io.Writer, manager *sessions.Manager, pio practiceIO, category, difficulty string) error {
	if category == "" {
		var err error
		if category, err = pio.SelectCategory(); err != nil {
			return err
		}
	}

	req := &models.StartInterviewRequest{Category: category, Difficulty: difficulty}
	if err := req.Validate(); err != nil {
		return err
	}

	start, err := manager.Start(ctx, req.Category, req.Difficulty, "")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nQuestion %d: %s\n\n", start.QuestionNumber, start.Question)

	for {
		transcript, err := manager.Transcript(ctx, start.SessionID, "")
		if err != nil {
			return err
		}
		answer, err := pio.ReadAnswer(transcript.TotalQuestions)
		if err != nil {
			return err
		}

		turn, err := manager.Submit(ctx, start.SessionID, answer, "")
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "\n%s\n\nScore: %d/100", turn.Evaluation, turn.Score)
		if turn.RepeatCount > 0 {
			fmt.Fprintf(out, " (repeated answers: %d)", turn.RepeatCount)
		}
		fmt.Fprintln(out)

		if !turn.Continue {
			break
		}
		fmt.Fprintf(out, "\nQuestion %d: %s\n\n", turn.QuestionNumber+1, turn.NextQuestion)
	}

	final, err := manager.Transcript(ctx, start.SessionID, "")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nInterview complete: %d questions, average score %.1f\n", final.TotalQuestions, final.AverageScore)
	return nil
}
