package handlers

import (
	"net/http"

	"github.com/ndcacricket/registration-system/services"
)

type NewsHandler struct {
	newsService services.NewsService
}

func NewNewsHandler(ns services.NewsService) *NewsHandler {
	return &NewsHandler{newsService: ns}
}

// PublishHandler обрабатывает POST /news (multipart, файлы image1..image3).
func (h *NewsHandler) PublishHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var closers []func()
	defer closeAll(closers)

	input := services.PublishNewsInput{
		Headline:        r.FormValue("Headline"),
		Description:     r.FormValue("Description"),
		PublicationDate: r.FormValue("publicationDate"),
		Category:        r.FormValue("category"),
	}

	imageFields := []struct {
		name string
		dst  **services.UploadedFile
	}{
		{"image1", &input.Image1},
		{"image2", &input.Image2},
		{"image3", &input.Image3},
	}
	for _, img := range imageFields {
		f, err := collectFormFile(r, img.name, &closers)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		*img.dst = f
	}

	item, err := h.newsService.Publish(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"news": item}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler обрабатывает GET /news
func (h *NewsHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.newsService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"news": items}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler обрабатывает GET /news/{id}
func (h *NewsHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	item, err := h.newsService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"news": item}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PatchHandler обрабатывает PATCH /news/{id} (multipart): присылаются
// только изменяемые поля, остальные остаются как есть.
func (h *NewsHandler) PatchHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var closers []func()
	defer closeAll(closers)

	input := services.PatchNewsInput{
		Headline:    r.FormValue("Headline"),
		Description: r.FormValue("Description"),
		Category:    r.FormValue("category"),
	}

	imageFields := []struct {
		name string
		dst  **services.UploadedFile
	}{
		{"image1", &input.Image1},
		{"image2", &input.Image2},
		{"image3", &input.Image3},
	}
	for _, img := range imageFields {
		f, err := collectFormFile(r, img.name, &closers)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		*img.dst = f
	}

	item, err := h.newsService.Patch(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"news": item}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler обрабатывает DELETE /news/{id}
func (h *NewsHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.newsService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "news item deleted"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
