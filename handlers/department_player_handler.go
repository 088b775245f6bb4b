package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Dosada05/sports-portal/middleware"
	"github.com/Dosada05/sports-portal/services"
)

// DepartmentPlayerHandler serves both the captain's own roster and the admin
// view; ownership is decided by the service from the actor in the context.
type DepartmentPlayerHandler struct {
	playerService services.DepartmentPlayerService
	logger        *slog.Logger
}

func NewDepartmentPlayerHandler(ps services.DepartmentPlayerService, logger *slog.Logger) *DepartmentPlayerHandler {
	return &DepartmentPlayerHandler{playerService: ps, logger: logger}
}

func (h *DepartmentPlayerHandler) actor(w http.ResponseWriter, r *http.Request) (services.Actor, bool) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return services.Actor{}, false
	}
	return actor, true
}

// List godoc
// @Summary Список игроков факультета
// @Description Капитан видит только своих игроков, администратор - всех.
// @Tags department-players
// @Produce json
// @Param search query string false "Поиск"
// @Param sport query string false "Вид спорта"
// @Param status query string false "Статус"
// @Param captain_id query int false "ID капитана (только для администратора)"
// @Param page query int false "Страница"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /captain/players [get]
func (h *DepartmentPlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	filter, err := parseListFilter(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	result, err := h.playerService.List(r.Context(), actor, filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, result)
}

func (h *DepartmentPlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	player, err := h.playerService.GetByID(r.Context(), actor, id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"player": player})
}

// Create godoc
// @Summary Добавить игрока
// @Description Игрок может быть зарегистрирован не более чем в двух видах спорта; вторая запись получает тот же Unique ID.
// @Tags department-players
// @Accept json
// @Produce json
// @Param body body services.DepartmentPlayerInput true "Данные игрока"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Капитан не одобрен"
// @Failure 409 {object} map[string]string "Вид спорта уже зарегистрирован или лимит исчерпан"
// @Failure 422 {object} map[string]interface{} "Ошибка валидации"
// @Security BearerAuth
// @Router /captain/players [post]
func (h *DepartmentPlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var input services.DepartmentPlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	player, err := h.playerService.Add(r.Context(), actor, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"player": player})
}

func (h *DepartmentPlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.DepartmentPlayerUpdateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	player, err := h.playerService.Update(r.Context(), actor, id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"player": player})
}

func (h *DepartmentPlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.playerService.Delete(r.Context(), actor, id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"message": "player deleted"})
}

func (h *DepartmentPlayerHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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
	player, err := h.playerService.UpdateStatus(r.Context(), id, input.Status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"player": player})
}

func (h *DepartmentPlayerHandler) BulkStatus(w http.ResponseWriter, r *http.Request) {
	var input services.BulkStatusInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	result, err := h.playerService.BulkUpdateStatus(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, result)
}

// Sports сообщает, в каких видах спорта уже зарегистрирован R-Number.
func (h *DepartmentPlayerHandler) Sports(w http.ResponseWriter, r *http.Request) {
	reg, err := h.playerService.RegisteredSports(r.Context(), r.URL.Query().Get("r_number"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, reg)
}

// Export godoc
// @Summary Выгрузка игроков в XLSX
// @Description Один лист на каждый вид спорта; принимает те же фильтры, что и список.
// @Tags department-players
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Security BearerAuth
// @Router /admin/department-players/export.xlsx [get]
func (h *DepartmentPlayerHandler) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	buf, err := h.playerService.Export(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	filename := "department-players-" + time.Now().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("failed to stream roster export", "error", err)
	}
}

func (h *DepartmentPlayerHandler) IDCard(w http.ResponseWriter, r *http.Request) {
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
	png, err := h.playerService.IDCard(r.Context(), id, size)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writePNG(w, h.logger, png, "player-"+strconv.Itoa(id)+".png")
}
