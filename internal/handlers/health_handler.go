package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Maazpendari01/InterviewQi/internal/config"
	"github.com/Maazpendari01/InterviewQi/internal/llm"
	"github.com/Maazpendari01/InterviewQi/internal/utils"
)

const (
	serviceName = "interviewqi"
	pingTimeout  = 2 * time.Second
)

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"`  // "ready" | "not_ready"
	Service string                    `json:"service"` // Service name
	Checks  map[string]ReadinessCheck `json:"checks"`  // Individual check results
}

// TemplateLister is implemented by prompts.PromptManager
type TemplateLister interface {
	GetTemplates() map[string][]string
}

// Pinger is a dependency that can report its own reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	provider      llm.Provider
	promptManager TemplateLister
	config        *config.Config
	dependencies  map[string]Pinger
}

// NewHealthHandler builds the probe handler. dependencies are pinged by
// /readyz under their map key, e.g. "session_store" or "database".
func NewHealthHandler(provider llm.Provider, promptManager TemplateLister, cfg *config.Config, dependencies map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		provider:      provider,
		promptManager: promptManager,
		config:        cfg,
		dependencies:  dependencies,
	}
}

func (handler *HealthHandler) HealthzHandler(writer http.ResponseWriter, request *http.Request) {
	utils.JSON(writer, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
		"version": "1.0.0",
	})
}

func (handler *HealthHandler) ReadyzHandler(writer http.ResponseWriter, request *http.Request) {
	checks := make(map[string]ReadinessCheck)
	allChecksPass := true

	fail := func(name, message string) {
		checks[name] = ReadinessCheck{Status: "failed", Message: message}
		allChecksPass = false
	}

	if handler.provider == nil {
		fail("provider", "AI provider not initialized")
	} else {
		checks["provider"] = ReadinessCheck{Status: "ok", Message: handler.provider.GetProviderName()}
	}

	// verify prompt manager has templates loaded
	switch {
	case handler.promptManager == nil:
		fail("prompt_manager", "Prompt manager not initialized")
	case len(handler.promptManager.GetTemplates()) == 0:
		fail("prompt_manager", "No prompt templates loaded")
	default:
		checks["prompt_manager"] = ReadinessCheck{Status: "ok"}
	}

	if handler.config == nil {
		fail("configuration", "Configuration not loaded")
	} else {
		checks["configuration"] = ReadinessCheck{Status: "ok"}
	}

	for name, dep := range handler.dependencies {
		if dep == nil {
			fail(name, "not initialized")
			continue
		}
		ctx, cancel := context.WithTimeout(request.Context(), pingTimeout)
		err := dep.Ping(ctx)
		cancel()
		if err != nil {
			fail(name, err.Error())
			continue
		}
		checks[name] = ReadinessCheck{Status: "ok"}
	}

	response := ReadinessResponse{
		Service: serviceName,
		Checks:  checks,
	}

	if allChecksPass {
		response.Status = "ready"
		utils.JSON(writer, http.StatusOK, response)
	} else {
		response.Status = "not_ready"
		utils.JSON(writer, http.StatusServiceUnavailable, response)
	}
}
