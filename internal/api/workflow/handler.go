package workflow

import (
	"context"
	"encoding/json"
	"net/http"

	"scanflow/internal/domain"
	apperror "scanflow/internal/errors"
	"scanflow/internal/pkg/logger"
)

// Engine define o contrato que o Handler espera do Engine de Workflow.
// O Handler é o Adapter de apresentação: converte HTTP em chamadas do engine
// e Outcomes em JSON — nenhuma regra de domínio vive aqui.
type Engine interface {
	Submit(ctx context.Context, raw string) domain.Outcome
	Confirm(ctx context.Context) domain.Outcome
	Decline(ctx context.Context) domain.Outcome
	Complete(ctx context.Context) domain.Outcome
	Cancel(ctx context.Context) domain.Outcome
	Undo(ctx context.Context) domain.Outcome
	EnterQuantity(ctx context.Context, raw string) domain.Outcome
	SetPickedQuantity(ctx context.Context, itemBarcode string, quantity int) domain.Outcome
	MarkOutOfStock(ctx context.Context, itemBarcode string) domain.Outcome
	Snapshot() *domain.WorkflowSession
}

// Handler agrupa todos os métodos de Handler do workflow.
type Handler struct {
	Engine Engine
	Logger logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Engine e o Logger.
func NewHandler(engine Engine, log logger.Logger) *Handler {
	return &Handler{
		Engine: engine,
		Logger: log,
	}
}

// scanRequest é o payload de POST /v1/scan.
type scanRequest struct {
	Barcode string `json:"barcode"`
}

// actionRequest é o payload de POST /v1/actions.
type actionRequest struct {
	Action string `json:"action"` // confirm | decline | complete | cancel | undo
}

// quantityRequest é o payload de POST /v1/quantity.
// Quantity chega como string: o engine é quem valida a entrada digitada.
type quantityRequest struct {
	Quantity string `json:"quantity"`
}

// overrideRequest é o payload de POST /v1/override (apenas supervisores).
type overrideRequest struct {
	Barcode  string `json:"barcode"`
	Quantity int    `json:"quantity"`
}

// outOfStockRequest é o payload de POST /v1/out-of-stock.
type outOfStockRequest struct {
	Barcode string `json:"barcode"`
}

// renderOutcome serializa um Outcome do engine. Rejeições de workflow são
// resultados de domínio, não erros de transporte: o status é sempre 200.
func (h *Handler) renderOutcome(w http.ResponseWriter, outcome domain.Outcome) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(outcome); err != nil {
		h.Logger.Error("Falha ao codificar JSON de resposta", err)
	}
}

// renderError trata falhas de transporte (payload malformado, método errado).
func (h *Handler) renderError(w http.ResponseWriter, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// ScanHandler lida com POST /v1/scan: uma leitura decodificada do scanner.
// @Summary Submete uma leitura de código de barras ao workflow ativo
// @Accept json
// @Produce json
// @Success 200 {object} domain.Outcome
// @Router /v1/scan [post]
func (h *Handler) ScanHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Barcode == "" {
		h.renderError(w, apperror.NewValidationError("Payload inválido. Informe o campo barcode."))
		return
	}

	h.renderOutcome(w, h.Engine.Submit(r.Context(), req.Barcode))
}

// ActionHandler lida com POST /v1/actions: cliques do operador
// (confirmar, recusar, concluir, cancelar, desfazer).
// @Summary Executa uma ação do operador sobre o workflow ativo
// @Accept json
// @Produce json
// @Success 200 {object} domain.Outcome
// @Router /v1/actions [post]
func (h *Handler) ActionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, apperror.NewValidationError("Payload inválido. Informe o campo action."))
		return
	}

	ctx := r.Context()
	switch req.Action {
	case "confirm":
		h.renderOutcome(w, h.Engine.Confirm(ctx))
	case "decline":
		h.renderOutcome(w, h.Engine.Decline(ctx))
	case "complete":
		h.renderOutcome(w, h.Engine.Complete(ctx))
	case "cancel":
		h.renderOutcome(w, h.Engine.Cancel(ctx))
	case "undo":
		h.renderOutcome(w, h.Engine.Undo(ctx))
	default:
		h.renderError(w, apperror.NewValidationError("Ação desconhecida: "+req.Action))
	}
}

// QuantityHandler lida com POST /v1/quantity: a quantidade digitada durante
// uma contagem de estoque.
// @Summary Informa a quantidade contada da linha ativa
// @Accept json
// @Produce json
// @Success 200 {object} domain.Outcome
// @Router /v1/quantity [post]
func (h *Handler) QuantityHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, apperror.NewValidationError("Payload inválido. Informe o campo quantity."))
		return
	}

	h.renderOutcome(w, h.Engine.EnterQuantity(r.Context(), req.Quantity))
}

// OverrideHandler lida com POST /v1/override: o ajuste manual de quantidade,
// protegido por autenticação de supervisor (middleware na rota).
// @Summary Ajusta manualmente a quantidade separada de uma linha
// @Accept json
// @Produce json
// @Success 200 {object} domain.Outcome
// @Router /v1/override [post]
func (h *Handler) OverrideHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	var req overrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Barcode == "" {
		h.renderError(w, apperror.NewValidationError("Payload inválido. Informe barcode e quantity."))
		return
	}

	h.renderOutcome(w, h.Engine.SetPickedQuantity(r.Context(), req.Barcode, req.Quantity))
}

// OutOfStockHandler lida com POST /v1/out-of-stock: marca uma linha do
// picking como sem estoque.
// @Summary Marca uma linha do pedido como sem estoque
// @Accept json
// @Produce json
// @Success 200 {object} domain.Outcome
// @Router /v1/out-of-stock [post]
func (h *Handler) OutOfStockHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	var req outOfStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Barcode == "" {
		h.renderError(w, apperror.NewValidationError("Payload inválido. Informe o campo barcode."))
		return
	}

	h.renderOutcome(w, h.Engine.MarkOutOfStock(r.Context(), req.Barcode))
}

// SessionHandler lida com GET /v1/session: o snapshot atual para o front-end
// re-renderizar após reconexão.
// @Summary Retorna o snapshot da sessão de workflow
// @Produce json
// @Success 200 {object} domain.WorkflowSession
// @Router /v1/session [get]
func (h *Handler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(h.Engine.Snapshot()); err != nil {
		h.Logger.Error("Falha ao codificar JSON de resposta", err)
	}
}
