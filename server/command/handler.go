package command

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/adrianliechti/speechbridge/config"
	"github.com/adrianliechti/speechbridge/pkg/synthesis"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	*config.Config
}

func New(cfg *config.Config) (*Handler, error) {
	h := &Handler{
		Config: cfg,
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Post("/greet", h.handleGreet)
	r.Post("/tts_synthesize", h.handleSynthesize)
}

func (h *Handler) handleGreet(w http.ResponseWriter, r *http.Request) {
	var req GreetRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJson(w, synthesis.Greet(req.Name))
}

func (h *Handler) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesis.Request

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	synthesizer, err := h.Synthesizer(valueSynthesizer(r))

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result := synthesis.New(synthesizer).Synthesize(r.Context(), req)

	if !result.Success && result.Error != nil {
		slog.WarnContext(r.Context(), "synthesis failed", "reference_id", req.ReferenceID, "format", req.Format, "error", *result.Error)
	}

	writeJson(w, result)
}

func valueSynthesizer(r *http.Request) string {
	if val := r.URL.Query().Get("synthesizer"); val != "" {
		return val
	}

	return ""
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err == nil {
		err = errors.New(http.StatusText(code))
	}

	resp := ErrorResponse{
		Error: Error{
			Message: err.Error(),
		},
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(resp)
}
