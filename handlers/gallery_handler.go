package handlers

import (
	"net/http"

	"github.com/Dosada05/sports-portal/services"
)

type GalleryHandler struct {
	galleryService services.GalleryService
}

func NewGalleryHandler(gs services.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleryService: gs}
}

func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	result, err := h.galleryService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, result)
}

func (h *GalleryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	item, err := h.galleryService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"item": item})
}

// readGalleryInput accepts either a JSON body or a multipart form with an
// optional "image" file. The returned cleanup func must always be called.
func readGalleryInput(w http.ResponseWriter, r *http.Request) (services.GalleryInput, *services.ImageUpload, func(), error) {
	var input services.GalleryInput
	if !isMultipart(r) {
		err := readJSON(w, r, &input)
		return input, nil, func() {}, err
	}

	img, cleanup, err := readImageUpload(w, r)
	if err != nil {
		return input, nil, cleanup, err
	}
	input.Title = r.FormValue("title")
	input.ImageURL = r.FormValue("image_url")
	input.Category = r.FormValue("category")
	input.Description = r.FormValue("description")
	return input, img, cleanup, nil
}

// CreateGalleryItem godoc
// @Summary Добавить фото в галерею
// @Description Принимает JSON с image_url или multipart-форму с файлом image.
// @Tags gallery
// @Accept json,mpfd
// @Produce json
// @Param title formData string true "Заголовок"
// @Param image formData file false "Изображение"
// @Param image_url formData string false "Внешняя ссылка"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/gallery [post]
func (h *GalleryHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, img, cleanup, err := readGalleryInput(w, r)
	defer cleanup()
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	item, err := h.galleryService.Create(r.Context(), input, img)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"item": item})
}

func (h *GalleryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input, img, cleanup, err := readGalleryInput(w, r)
	defer cleanup()
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	item, err := h.galleryService.Update(r.Context(), id, input, img)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"item": item})
}

func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.galleryService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"message": "gallery item deleted"})
}
