package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"scanflow/internal/domain"
	apperror "scanflow/internal/errors"
	"scanflow/internal/pkg/logger"
)

// AuthService define o contrato que o Handler espera da camada de Serviço.
type AuthService interface {
	Login(ctx context.Context, name string, accessCode string) (string, error)
}

// Handler agrupa os métodos de Handler de autenticação.
type Handler struct {
	Service AuthService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc AuthService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// loginRequest é o payload de POST /v1/login.
type loginRequest struct {
	Name       string `json:"name"`
	AccessCode string `json:"access_code"`
}

// loginResponse é o corpo de sucesso com o token emitido.
type loginResponse struct {
	Token string `json:"token"`
}

// LoginHandler lida com POST /v1/login: valida o código de acesso e emite o
// JWT que libera as operações de supervisor.
// @Summary Autentica um usuário do terminal pelo código de acesso
// @Accept json
// @Produce json
// @Success 200 {object} loginResponse
// @Failure 401 {object} domain.ErrorResponse
// @Router /v1/login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."))
		return
	}

	tokenString, err := h.Service.Login(r.Context(), req.Name, req.AccessCode)
	if err != nil {
		h.renderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(loginResponse{Token: tokenString})
}

// renderError traduz erros de serviço em respostas padronizadas.
func (h *Handler) renderError(w http.ResponseWriter, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error("Erro de Servidor no login", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}
