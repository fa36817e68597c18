package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/blogifyhq/blogify/internal/middleware"
	"github.com/blogifyhq/blogify/internal/service/ai"
	chatservice "github.com/blogifyhq/blogify/internal/service/chat"
	"github.com/blogifyhq/blogify/pkg/utils"
)

// Orchestrator processes one chat turn.
type Orchestrator interface {
	Handle(ctx context.Context, token, message, ownerID string) (string, error)
}

// Handler serves the chat widget endpoints. Orchestrator may be nil when the
// AI upstream is not configured; the endpoint then reports unavailability.
type Handler struct {
	orchestrator Orchestrator
}

func New(orchestrator Orchestrator) *Handler {
	return &Handler{orchestrator: orchestrator}
}

// RegisterRoutes mounts the chat endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.handleSendMessage)
	r.Get("/info", h.handleSystemInfo)
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	if h.orchestrator == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "ai chat unavailable")
		return
	}

	var payload struct {
		Message   string `json:"message"`
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Message == "" || payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "Message and sessionId are required.")
		return
	}

	var ownerID string
	if identity, ok := middleware.IdentityFrom(r.Context()); ok {
		ownerID = identity.UserID
	}

	reply, err := h.orchestrator.Handle(r.Context(), payload.SessionID, payload.Message, ownerID)
	if err != nil {
		status, message := mapChatError(err)
		utils.RespondError(w, status, message)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"response": reply})
}

// mapChatError translates the orchestrator's failure taxonomy to HTTP. The
// two transient kinds are normally absorbed by the fallback and only appear
// here if that substitution is bypassed.
func mapChatError(err error) (int, string) {
	switch {
	case errors.Is(err, chatservice.ErrInvalidRequest):
		return http.StatusBadRequest, "Message and sessionId are required."
	case errors.Is(err, ai.ErrAuthenticationFailed):
		return http.StatusUnauthorized, "API key authentication failed. Please check your configuration."
	case errors.Is(err, ai.ErrRateLimited):
		return http.StatusTooManyRequests, "Rate limit exceeded. Please wait a moment before trying again."
	case errors.Is(err, ai.ErrServiceOverloaded):
		return http.StatusServiceUnavailable, "The AI service is currently overloaded. Please try again in a few moments."
	default:
		return http.StatusInternalServerError, "Failed to get response from AI."
	}
}

func (h *Handler) handleSystemInfo(w http.ResponseWriter, r *http.Request) {
	cores, err := cpu.Counts(true)
	if err != nil {
		cores = runtime.NumCPU()
	}

	info := map[string]any{
		"platform": runtime.GOOS,
		"cpuCores": cores,
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info["totalMemory"] = fmt.Sprintf("%.2f GB", float64(vm.Total)/1e9)
		info["freeMemory"] = fmt.Sprintf("%.2f GB", float64(vm.Available)/1e9)
	}

	utils.RespondJSON(w, http.StatusOK, info)
}
