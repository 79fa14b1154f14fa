package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/justic/video-gateway/internal/auth"
	"github.com/justic/video-gateway/internal/video/models"
)

const timeLayout = time.RFC3339

// Orchestrator is the pipeline surface the HTTP layer talks to. Both
// route groups share one implementation; the variant passed per route
// is the only difference between them.
type Orchestrator interface {
	Generate(ctx context.Context, variant models.Variant, userID, prompt string) (string, error)
	Publish(ctx context.Context, variant models.Variant, userID, videoKey, title, description string) (string, error)
	List(ctx context.Context, userID string) ([]string, error)
	StreamVideo(ctx context.Context, userID, taskID string, processed bool) (io.ReadCloser, error)
	StreamThumbnail(ctx context.Context, userID, taskID string) (io.ReadCloser, error)
	Library(ctx context.Context, userID string) ([]models.FinalVideo, error)
}

type Pinger func(ctx context.Context) error

type Handler struct {
	svc       Orchestrator
	validate  *validator.Validate
	logger    zerolog.Logger
	dbPing    Pinger
	redisPing Pinger
}

func New(svc Orchestrator, logger zerolog.Logger, dbPing, redisPing Pinger) *Handler {
	return &Handler{
		svc:       svc,
		validate:  validator.New(),
		logger:    logger.With().Str("component", "httpapi").Logger(),
		dbPing:    dbPing,
		redisPing: redisPing,
	}
}

// Health pings the gateway's two hard dependencies and reports 503 when
// either is unreachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	resp := map[string]string{"status": "ok", "database": "ok", "redis": "ok"}
	if err := h.dbPing(r.Context()); err != nil {
		resp["database"] = "unavailable"
		resp["status"] = "unhealthy"
		status = http.StatusServiceUnavailable
	}
	if err := h.redisPing(r.Context()); err != nil {
		resp["redis"] = "unavailable"
		resp["status"] = "unhealthy"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

func (h *Handler) Generate(variant models.Variant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorJSON(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if err := h.validate.Struct(req); err != nil {
			writeErrorJSON(w, http.StatusBadRequest, "prompt is required")
			return
		}

		taskID, err := h.svc.Generate(r.Context(), variant, auth.UserID(r.Context()), req.Prompt)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, GenerateResponse{TaskID: taskID, Status: "queued"})
	}
}

func (h *Handler) Publish(variant models.Variant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req PublishRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorJSON(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if err := h.validate.Struct(req); err != nil {
			writeErrorJSON(w, http.StatusBadRequest, "video_key and title are required")
			return
		}

		id, err := h.svc.Publish(r.Context(), variant, auth.UserID(r.Context()), req.VideoKey, req.Title, req.Description)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}

		// Upload status is always UPLOADED once the platform accepted the
		// file; a missing platform id shows up as a null youtube_video_id.
		resp := PublishResponse{Status: "UPLOADED"}
		if id != "" {
			resp.YouTubeVideoID = &id
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	keys, err := h.svc.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if keys == nil {
		keys = []string{}
	}
	writeJSON(w, http.StatusOK, ListResponse{Videos: keys})
}

func (h *Handler) Library(w http.ResponseWriter, r *http.Request) {
	videos, err := h.svc.Library(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	items := make([]LibraryItem, 0, len(videos))
	for _, v := range videos {
		items = append(items, toLibraryItem(v))
	}
	writeJSON(w, http.StatusOK, LibraryResponse{Videos: items})
}

func (h *Handler) StreamVideo(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")
	processed, _ := strconv.ParseBool(r.URL.Query().Get("processed"))

	rc, err := h.svc.StreamVideo(r.Context(), auth.UserID(r.Context()), taskID, processed)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "video/mp4")
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn().Err(err).Str("task_id", taskID).Msg("video stream interrupted")
	}
}

func (h *Handler) StreamThumbnail(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	rc, err := h.svc.StreamThumbnail(r.Context(), auth.UserID(r.Context()), taskID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "image/jpeg")
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn().Err(err).Str("task_id", taskID).Msg("thumbnail stream interrupted")
	}
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		writeErrorJSON(w, http.StatusNotFound, "not found")
	case errors.Is(err, models.ErrInvalidArgument):
		writeErrorJSON(w, http.StatusBadRequest, "invalid argument")
	case errors.Is(err, models.ErrUpstream):
		writeErrorJSON(w, http.StatusBadGateway, "upstream error: "+err.Error())
	default:
		h.logger.Error().Err(err).Msg("request failed")
		writeErrorJSON(w, http.StatusInternalServerError, "internal error: "+err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
