package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/joestump/pagegen/internal/auth"
	"github.com/joestump/pagegen/internal/errcode"
	"github.com/joestump/pagegen/internal/llm"
	"github.com/joestump/pagegen/internal/store"
)

type llmAPIHandler struct {
	client *llm.Client
	log    *zap.Logger
}

func registerLLMRoutes(r chi.Router, client *llm.Client, log *zap.Logger) {
	h := &llmAPIHandler{client: client, log: log}
	r.With(auth.RequireCapability(store.CapManageOptions)).Post("/llm/test", h.Test)
}

// Test sends a minimal completion to the configured provider.
//
// @Summary      Test the LLM connection
// @Description  Sends a minimal prompt to the configured provider. An api_key in the body overrides the configured key for this call only. Requires manage_options.
// @Tags         LLM
// @Accept       json
// @Produce      json
// @Param        body  body      LLMTestRequest  false  "Optional key override"
// @Success      200   {object}  LLMTestResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse
// @Failure      503   {object}  ErrorResponse
// @Failure      504   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /llm/test [post]
func (h *llmAPIHandler) Test(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		writeError(w, http.StatusServiceUnavailable, "no LLM provider configured", errcode.APIKeyMissing)
		return
	}

	var req LLMTestRequest
	if err := decodeOptional(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", errcode.BadRequest)
		return
	}

	client := h.client
	if req.APIKey != "" {
		client = client.WithAPIKey(req.APIKey)
	}
	if err := client.Ping(r.Context()); err != nil {
		h.log.Info("llm connection test failed", zap.String("provider", client.Provider()), zap.Error(err))
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LLMTestResponse{
		Success:  true,
		Provider: client.Provider(),
		Message:  "connection successful",
	})
}

// decodeOptional decodes a JSON body, treating an empty body as zero value.
func decodeOptional(body io.Reader, v any) error {
	err := json.NewDecoder(body).Decode(v)
	if err == io.EOF {
		return nil
	}
	return err
}
