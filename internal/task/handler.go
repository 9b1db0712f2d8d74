package task

import (
	"bufio"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/taskflow/internal/auth"
	"github.com/saulo-duarte/taskflow/internal/config"
	"github.com/saulo-duarte/taskflow/internal/inertia"
	"github.com/saulo-duarte/taskflow/internal/middlewares"
)

const (
	HomeComponent = "app/HomePage"

	maxMultipartMemory = 4 << 20
)

type Handler struct {
	service  TaskService
	renderer *inertia.Renderer
	flash    *inertia.FlashStore
}

func NewHandler(service TaskService, renderer *inertia.Renderer, flash *inertia.FlashStore) *Handler {
	return &Handler{service: service, renderer: renderer, flash: flash}
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	filters := FiltersFromQuery(r.URL.Query())
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	todos, err := h.service.List(r.Context(), filters, page)
	if err != nil {
		h.writeError(w, r, err, "Failed to list tasks")
		return
	}
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Failed to load task stats")
		return
	}

	h.renderer.Render(w, r, HomeComponent, inertia.Props{
		"auth":    AuthProps{Name: claims.Name},
		"todos":   todos,
		"stats":   stats,
		"filters": filters,
	})
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	dto, err := parseUpsertForm(r)
	if err != nil {
		h.rejectForm(w, r, err)
		return
	}

	if _, err := h.service.CreateTask(r.Context(), dto); err != nil {
		h.writeError(w, r, err, "Failed to create task")
		return
	}

	h.flash.Set(w, r, inertia.Flash{Success: "Task created successfully."})
	inertia.Back(w, r, HomePath)
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	dto, err := parseUpsertForm(r)
	if err != nil {
		h.rejectForm(w, r, err)
		return
	}

	if _, err := h.service.UpdateTask(r.Context(), id, dto); err != nil {
		h.writeError(w, r, err, "Failed to update task")
		return
	}

	h.flash.Set(w, r, inertia.Flash{Success: "Task updated successfully."})
	inertia.Back(w, r, HomePath)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	finished, err := ParseBool(r.FormValue("is_finished"))
	if err != nil {
		h.rejectForm(w, r, ValidationErrors{"is_finished": "The is finished field must be true or false."})
		return
	}

	if _, err := h.service.SetFinished(r.Context(), id, finished); err != nil {
		h.writeError(w, r, err, "Failed to change task status")
		return
	}

	message := "Task marked as unfinished."
	if finished {
		message = "Task marked as finished."
	}
	h.flash.Set(w, r, inertia.Flash{Success: message})
	inertia.Back(w, r, HomePath)
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		h.writeError(w, r, err, "Failed to delete task")
		return
	}

	h.flash.Set(w, r, inertia.Flash{Success: "Task deleted successfully."})
	inertia.Back(w, r, HomePath)
}

func (h *Handler) rejectForm(w http.ResponseWriter, r *http.Request, err error) {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		h.flash.Set(w, r, inertia.Flash{Errors: verrs})
		inertia.Back(w, r, HomePath)
		return
	}
	config.WithContext(r.Context()).WithError(err).Warn("Invalid task form")
	http.Error(w, "invalid request body", http.StatusBadRequest)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := config.WithContext(r.Context())

	var verrs ValidationErrors
	switch {
	case errors.As(err, &verrs):
		h.rejectForm(w, r, verrs)
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrInvalidID):
		http.Error(w, "invalid id", http.StatusBadRequest)
	case errors.Is(err, ErrTaskNotFound):
		http.Error(w, "task not found", http.StatusNotFound)
	default:
		log.WithError(err).Error(msg)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func parseUpsertForm(r *http.Request) (UpsertTaskDTO, error) {
	var dto UpsertTaskDTO

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		if bodyTooLarge(r, err) {
			return dto, ValidationErrors{"cover": coverTooLarge()}
		}
		return dto, err
	}

	finished, err := ParseBool(r.FormValue("is_finished"))
	if err != nil {
		return dto, ValidationErrors{"is_finished": "The is finished field must be true or false."}
	}

	dto.Title = r.FormValue("title")
	dto.Description = r.FormValue("description")
	dto.IsFinished = finished

	file, header, err := r.FormFile("cover")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		return dto, err
	default:
		dto.Cover = coverFromPart(file, header)
	}
	return dto, nil
}

// bodyTooLarge reports whether the form was cut off by the request size limit.
func bodyTooLarge(r *http.Request, err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge) || r.ContentLength > middlewares.MaxRequestBytes
}

func coverFromPart(file multipart.File, header *multipart.FileHeader) *CoverUpload {
	br := bufio.NewReaderSize(file, 512)
	sniff, _ := br.Peek(512)
	return &CoverUpload{
		Filename:    header.Filename,
		ContentType: http.DetectContentType(sniff),
		Size:        header.Size,
		Body:        io.Reader(br),
	}
}
