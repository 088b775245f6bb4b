package handlers

import (
	"net/http"

	"github.com/Dosada05/sports-portal/middleware"
	"github.com/Dosada05/sports-portal/services"
)

type AuthHandler struct {
	authService    services.AuthService
	adminService   services.AdminService
	captainService services.CaptainService
	playerService  services.PlayerService
}

func NewAuthHandler(
	authService services.AuthService,
	adminService services.AdminService,
	captainService services.CaptainService,
	playerService services.PlayerService,
) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		adminService:   adminService,
		captainService: captainService,
		playerService:  playerService,
	}
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, fn func(*http.Request, services.LoginInput) (*services.AuthResult, error)) {
	var input services.LoginInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	result, err := fn(r, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, result)
}

// AdminLogin godoc
// @Summary Вход администратора
// @Tags auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Email и пароль"
// @Success 200 {object} services.AuthResult
// @Failure 401 {object} map[string]string "Неверные учетные данные"
// @Failure 422 {object} map[string]interface{} "Ошибка валидации"
// @Failure 429 {object} map[string]string "Слишком много попыток"
// @Router /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, func(r *http.Request, in services.LoginInput) (*services.AuthResult, error) {
		return h.authService.LoginAdmin(r.Context(), in)
	})
}

// CaptainLogin godoc
// @Summary Вход капитана
// @Description Доступен только для капитанов со статусом approved или active.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Email и пароль"
// @Success 200 {object} services.AuthResult
// @Failure 401 {object} map[string]string "Неверные учетные данные"
// @Failure 403 {object} map[string]string "Аккаунт не одобрен"
// @Router /auth/captain/login [post]
func (h *AuthHandler) CaptainLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, func(r *http.Request, in services.LoginInput) (*services.AuthResult, error) {
		return h.authService.LoginCaptain(r.Context(), in)
	})
}

func (h *AuthHandler) PlayerLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, func(r *http.Request, in services.LoginInput) (*services.AuthResult, error) {
		return h.authService.LoginPlayer(r.Context(), in)
	})
}

// CaptainRegister godoc
// @Summary Регистрация капитана
// @Description Новый капитан получает статус pending и Unique ID вида CPT-0001.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body services.CaptainRegisterInput true "Данные капитана"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]string "Email или R-Number уже заняты"
// @Failure 422 {object} map[string]interface{} "Ошибка валидации"
// @Router /auth/captain/register [post]
func (h *AuthHandler) CaptainRegister(w http.ResponseWriter, r *http.Request) {
	var input services.CaptainRegisterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	captain, err := h.captainService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{
		"captain": captain,
		"message": "Registration submitted. An admin will review it shortly.",
	})
}

func (h *AuthHandler) PlayerRegister(w http.ResponseWriter, r *http.Request) {
	var input services.PlayerRegisterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	player, err := h.playerService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"player": player})
}

// Logout godoc
// @Summary Выход
// @Description Отзывает текущий токен до истечения его срока действия.
// @Tags auth
// @Success 204
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	if err := h.authService.Logout(r.Context(), claims); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminMe возвращает профиль текущего администратора.
func (h *AuthHandler) AdminMe(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}
	admin, err := h.adminService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"admin": admin})
}
