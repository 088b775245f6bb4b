package handlers

import (
	"net/http"

	"github.com/Dosada05/sports-portal/services"
)

type VerificationHandler struct {
	verificationService services.VerificationService
}

func NewVerificationHandler(vs services.VerificationService) *VerificationHandler {
	return &VerificationHandler{verificationService: vs}
}

// Verify godoc
// @Summary Проверка капитана или игрока
// @Description Сверяет R-Number и Unique ID. Результат: verified, mismatch, partial или not_found.
// @Tags verification
// @Accept json
// @Produce json
// @Param body body services.VerifyInput true "Тип записи и оба идентификатора"
// @Success 200 {object} services.VerificationResult
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/verify [post]
func (h *VerificationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var input services.VerifyInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	result, err := h.verificationService.Verify(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, result)
}
