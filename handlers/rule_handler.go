package handlers

import (
	"net/http"

	"github.com/Dosada05/sports-portal/services"
)

type RuleHandler struct {
	ruleService services.RuleService
}

func NewRuleHandler(rs services.RuleService) *RuleHandler {
	return &RuleHandler{ruleService: rs}
}

// ListRules godoc
// @Summary Правила
// @Description Правила отсортированы по display_order; description_html содержит готовую разметку.
// @Tags rules
// @Produce json
// @Param sport query string false "Вид спорта"
// @Param category query string false "Категория"
// @Success 200 {object} map[string]interface{}
// @Router /rules [get]
func (h *RuleHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	result, err := h.ruleService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, result)
}

func (h *RuleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	rule, err := h.ruleService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"rule": rule})
}

func (h *RuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.RuleInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	rule, err := h.ruleService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"rule": rule})
}

func (h *RuleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.RuleInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	rule, err := h.ruleService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"rule": rule})
}

func (h *RuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.ruleService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"message": "rule deleted"})
}

type previewInput struct {
	Text string `json:"text"`
}

// Preview godoc
// @Summary Предпросмотр описания правила
// @Tags rules
// @Accept json
// @Produce json
// @Param body body previewInput true "Текст с разметкой"
// @Success 200 {object} services.RulePreview
// @Security BearerAuth
// @Router /rules/preview [post]
func (h *RuleHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var input previewInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, h.ruleService.Preview(input.Text))
}
