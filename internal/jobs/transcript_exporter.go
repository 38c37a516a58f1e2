package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Maazpendari01/InterviewQi/internal/models"
)

// ExportSource is implemented by repositories.SessionRepository
type ExportSource interface {
	GetUnexportedSessions(ctx context.Context, limit int) ([]models.InterviewSession, error)
	ResponsesForSessions(ctx context.Context, ids []uint) ([]models.QuestionResponse, error)
	MarkExported(ctx context.Context, ids []uint) (int64, error)
}

// TranscriptExporterJob periodically turns evaluated answers of completed
// interviews into JSONL tuning data
type TranscriptExporterJob struct {
	source ExportSource
	config *ExporterConfig
	cron   *cron.Cron
	logger *zap.Logger
	now    func() time.Time
}

// ExporterConfig contains configuration for the exporter job
type ExporterConfig struct {
	Schedule      string // Cron schedule (e.g., "0 2 * * *" for 2 AM daily)
	ExportDir     string // Directory to store exported files
	ExportEnabled bool
	BatchSize     int // sessions per run, 0 for no limit
}

// ExportResult summarizes one export run
type ExportResult struct {
	Sessions int
	Samples  int
	File     string // empty when nothing was written
}

func NewTranscriptExporterJob(source ExportSource, config *ExporterConfig, logger *zap.Logger) *TranscriptExporterJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptExporterJob{
		source: source,
		config: config,
		cron:   cron.New(),
		logger: logger,
		now:    time.Now,
	}
}

// Start begins the scheduled export job
func (j *TranscriptExporterJob) Start() error {
	if !j.config.ExportEnabled {
		j.logger.Info("Transcript export is disabled, skipping scheduler")
		return nil
	}

	_, err := j.cron.AddFunc(j.config.Schedule, func() {
		if _, err := j.RunExport(context.Background()); err != nil {
			j.logger.Error("Export job failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule export job: %w", err)
	}

	j.cron.Start()
	j.logger.Info("Transcript exporter started", zap.String("schedule", j.config.Schedule))
	return nil
}

// Stop stops the scheduler and waits for a running export to finish
func (j *TranscriptExporterJob) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
		j.logger.Info("Transcript exporter stopped")
	}
}

// RunExport performs a single export run
func (j *TranscriptExporterJob) RunExport(ctx context.Context) (*ExportResult, error) {
	sessions, err := j.source.GetUnexportedSessions(ctx, j.config.BatchSize)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		j.logger.Debug("No completed sessions to export")
		return &ExportResult{}, nil
	}

	ids := make([]uint, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}

	responses, err := j.source.ResponsesForSessions(ctx, ids)
	if err != nil {
		return nil, err
	}

	data, samples, err := ExportToJSONL(responses)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{Sessions: len(sessions), Samples: samples}
	if samples > 0 {
		if err := os.MkdirAll(j.config.ExportDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create export directory: %w", err)
		}
		filename := fmt.Sprintf("interview_export_%s.jsonl", j.now().UTC().Format("20060102_150405"))
		result.File = filepath.Join(j.config.ExportDir, filename)
		if err := os.WriteFile(result.File, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write export file: %w", err)
		}
	}

	// sessions without usable samples are marked too so they are not rescanned
	if _, err := j.source.MarkExported(ctx, ids); err != nil {
		return nil, err
	}

	j.logger.Info("Exported interview transcripts",
		zap.Int("sessions", result.Sessions),
		zap.Int("samples", result.Samples),
		zap.String("file", result.File))
	return result, nil
}

// ExportToJSONL converts evaluated answers to JSONL in the Gemini tuning
// format. Repetition penalties carry a canned evaluation and are skipped.
func ExportToJSONL(responses []models.QuestionResponse) ([]byte, int, error) {
	var buf bytes.Buffer
	samples := 0

	for _, resp := range responses {
		if resp.Repeated || strings.TrimSpace(resp.Evaluation) == "" {
			continue
		}

		dataPoint := models.TrainingDataPoint{
			Contents: []models.TrainingContent{
				{
					Role:  "user",
					Parts: []models.TrainingPart{{Text: trainingPrompt(resp)}},
				},
				{
					Role:  "model",
					Parts: []models.TrainingPart{{Text: resp.Evaluation}},
				},
			},
		}

		line, err := json.Marshal(dataPoint)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal training data: %w", err)
		}
		if samples > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(line)
		samples++
	}

	return buf.Bytes(), samples, nil
}

func trainingPrompt(resp models.QuestionResponse) string {
	return fmt.Sprintf("Category: %s\nQuestion: %s\nCandidate answer: %s\nEvaluate the answer and give a score in the format \"Score: X/100\".",
		resp.Category, resp.QuestionText, resp.UserAnswer)
}
