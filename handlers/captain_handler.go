package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Dosada05/sports-portal/middleware"
	"github.com/Dosada05/sports-portal/services"
)

type CaptainHandler struct {
	captainService services.CaptainService
	logger         *slog.Logger
}

func NewCaptainHandler(cs services.CaptainService, logger *slog.Logger) *CaptainHandler {
	return &CaptainHandler{captainService: cs, logger: logger}
}

// ListCaptains godoc
// @Summary Список капитанов
// @Tags captains
// @Produce json
// @Param search query string false "Поиск по имени, email, R-Number, Unique ID"
// @Param status query string false "Статус"
// @Param sport query string false "Вид спорта"
// @Param department query string false "Факультет"
// @Param page query int false "Страница"
// @Param limit query int false "Размер страницы (0 - все)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/captains [get]
func (h *CaptainHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	result, err := h.captainService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, result)
}

func (h *CaptainHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	captain, err := h.captainService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"captain": captain})
}

// Create добавляет капитана от имени администратора (по умолчанию approved).
func (h *CaptainHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CaptainRegisterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	captain, err := h.captainService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"captain": captain})
}

func (h *CaptainHandler) update(w http.ResponseWriter, r *http.Request, id int) {
	var input services.CaptainUpdateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	captain, err := h.captainService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"captain": captain})
}

func (h *CaptainHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	h.update(w, r, id)
}

// UpdateStatus godoc
// @Summary Изменить статус капитана
// @Tags captains
// @Accept json
// @Produce json
// @Param id path int true "ID капитана"
// @Param body body services.StatusInput true "Новый статус"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Недопустимый переход статуса"
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/captains/{id}/status [patch]
func (h *CaptainHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.StatusInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	captain, err := h.captainService.UpdateStatus(r.Context(), id, input.Status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"captain": captain})
}

// BulkStatus godoc
// @Summary Массовое изменение статуса капитанов
// @Description ID обрабатываются по порядку; ошибки по отдельным ID не прерывают операцию.
// @Tags captains
// @Accept json
// @Produce json
// @Param body body services.BulkStatusInput true "ID и новый статус"
// @Success 200 {object} services.BulkResult
// @Security BearerAuth
// @Router /admin/captains/bulk-status [post]
func (h *CaptainHandler) BulkStatus(w http.ResponseWriter, r *http.Request) {
	var input services.BulkStatusInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	result, err := h.captainService.BulkUpdateStatus(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, result)
}

// Delete godoc
// @Summary Удалить капитана
// @Description Удаляет капитана и всех добавленных им игроков в одной транзакции.
// @Tags captains
// @Produce json
// @Param id path int true "ID капитана"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/captains/{id} [delete]
func (h *CaptainHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	removed, err := h.captainService.Delete(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"message": "captain deleted", "players_removed": removed})
}

func (h *CaptainHandler) IDCard(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	size, _, err := queryInt(r, "size")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	png, err := h.captainService.IDCard(r.Context(), id, size)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writePNG(w, h.logger, png, "captain-"+strconv.Itoa(id)+".png")
}

func (h *CaptainHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}
	captain, err := h.captainService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"captain": captain})
}

func (h *CaptainHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}
	h.update(w, r, id)
}

func writePNG(w http.ResponseWriter, logger *slog.Logger, png []byte, filename string) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `inline; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		logger.Warn("failed to write png response", "error", err)
	}
}
