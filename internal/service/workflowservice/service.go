package workflowservice

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"scanflow/internal/barcode"
	"scanflow/internal/domain"
	apperror "scanflow/internal/errors"
	"scanflow/internal/pkg/logger"
)

// Repository define o contrato que o Engine de Workflow espera da camada de
// Persistência. Ausência de registro é sempre um NotFoundError tipado.
type Repository interface {
	FindOrder(ctx context.Context, id string) (domain.Order, error)
	FindStockCount(ctx context.Context, id string) (domain.StockCount, error)
	FindLocation(ctx context.Context, id string) (domain.Location, error)
	FindItem(ctx context.Context, barcode string) (domain.Item, error)
}

// Service é o Engine de Workflow: o dono exclusivo da WorkflowSession e do
// log de desfazer. Toda leitura de código de barras e toda ação do operador
// passam por aqui e produzem um domain.Outcome — nunca um erro fatal.
//
// O modelo de execução é de evento único: cada operação roda até o fim sob o
// mutex, então leituras entregues por um listener HTTP concorrente são
// serializadas na ordem de chegada. Não há deduplicação aqui — o debounce de
// leituras repetidas pertence ao colaborador de borda.
type Service struct {
	repo   Repository
	logger logger.Logger

	// Regras vindas da configuração
	highQuantityThreshold int

	mu      sync.Mutex
	session domain.WorkflowSession
	undo    *undoLog
}

// NewService cria e retorna uma nova instância do Engine de Workflow.
func NewService(repo Repository, log logger.Logger, highQuantityThreshold, undoDepth int) *Service {
	return &Service{
		repo:                  repo,
		logger:                log,
		highQuantityThreshold: highQuantityThreshold,
		session:               domain.WorkflowSession{Kind: domain.KindNone},
		undo:                  newUndoLog(undoDepth),
	}
}

// Submit processa uma leitura de código de barras: classifica, valida contra
// o passo atual e aplica a transição. É o ponto de entrada único para scans —
// suficiente para dirigir toda a máquina de estados a partir de entrada
// roteirizada.
func (s *Service) Submit(ctx context.Context, raw string) domain.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Reject("empty scan", s.session.Snapshot())
	}

	c := barcode.Classify(raw)
	s.logger.Debug("Leitura classificada.", map[string]interface{}{
		"kind": string(c.Kind), "id": c.ID, "inline": c.InlineOrder != nil,
	})

	switch s.session.Kind {
	case domain.KindNone:
		return s.startWorkflow(ctx, c)
	case domain.KindPicking:
		return s.pickingScan(c)
	case domain.KindStockCount:
		return s.countScan(c)
	case domain.KindLocationMove:
		return s.moveScan(ctx, c)
	case domain.KindReturns:
		return s.returnScan(ctx, c)
	}

	// Kind é um conjunto fechado; chegar aqui indica corrupção de estado.
	s.logger.Error("Sessão com kind desconhecido — resetando.", nil)
	s.reset()
	return domain.Reject("invalid session state", s.session.Snapshot())
}

// startWorkflow abre um novo workflow a partir de uma leitura com a sessão
// ociosa. Falha de lookup nunca transiciona: a sessão permanece em KindNone.
func (s *Service) startWorkflow(ctx context.Context, c barcode.Classification) domain.Outcome {
	switch c.Kind {
	case barcode.KindOrder:
		return s.startPicking(ctx, c)
	case barcode.KindStockCount:
		return s.startStockCount(ctx, c)
	case barcode.KindLocation:
		return s.startLocationMove(ctx, c)
	case barcode.KindItem:
		// Categoria residual: um item avulso com a sessão ociosa inicia
		// uma devolução.
		return s.startReturns(ctx, c)
	}
	return domain.Reject("unrecognized barcode", s.session.Snapshot())
}

// Confirm é o clique de confirmação do operador para o ponto de decisão do
// passo atual (origem da movimentação, execução do movimento, recontagem,
// devolução, conclusão forçada pendente).
func (s *Service) Confirm(ctx context.Context) domain.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.session.Kind {
	case domain.KindNone:
		return domain.Reject("no active workflow", s.session.Snapshot())
	case domain.KindPicking:
		return s.pickingConfirm()
	case domain.KindStockCount:
		return s.countConfirm()
	case domain.KindLocationMove:
		return s.moveConfirm()
	case domain.KindReturns:
		return s.returnConfirm()
	}
	return domain.Reject("invalid session state", s.session.Snapshot())
}

// Decline é o clique de recusa do operador para o ponto de decisão pendente.
// Recusar nunca muta entidades do workflow — apenas descarta a pergunta.
func (s *Service) Decline(ctx context.Context) domain.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.session.Kind {
	case domain.KindNone:
		return domain.Reject("no active workflow", s.session.Snapshot())
	case domain.KindPicking:
		return s.pickingDecline()
	case domain.KindStockCount:
		return s.countDecline()
	case domain.KindLocationMove:
		// Recusar qualquer confirmação da movimentação cancela o workflow.
		s.reset()
		s.logger.Info("Movimentação cancelada pelo operador.", nil)
		return domain.Info("move cancelled", s.session.Snapshot())
	case domain.KindReturns:
		s.reset()
		s.logger.Info("Devolução cancelada pelo operador.", nil)
		return domain.Info("return cancelled", s.session.Snapshot())
	}
	return domain.Reject("invalid session state", s.session.Snapshot())
}

// Complete é a ação explícita de conclusão. Atingir o predicado de conclusão
// apenas libera esta ação; a conclusão nunca é automática.
func (s *Service) Complete(ctx context.Context) domain.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.session.Kind {
	case domain.KindNone:
		return domain.Reject("no active workflow", s.session.Snapshot())
	case domain.KindPicking:
		return s.pickingComplete()
	case domain.KindStockCount:
		return s.countComplete()
	case domain.KindLocationMove, domain.KindReturns:
		return domain.Reject("complete is not available for this workflow", s.session.Snapshot())
	}
	return domain.Reject("invalid session state", s.session.Snapshot())
}

// Cancel descarta incondicionalmente o workflow ativo e o log de desfazer.
// Cancelar sempre sucede, inclusive com a sessão já ociosa.
func (s *Service) Cancel(ctx context.Context) domain.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.Active() {
		return domain.Info("no active workflow", s.session.Snapshot())
	}

	kind := s.session.Kind
	s.reset()
	s.logger.Info("Workflow cancelado.", map[string]interface{}{"kind": string(kind)})
	return domain.Success("workflow cancelled", s.session.Snapshot())
}

// Snapshot devolve uma cópia do estado atual da sessão para renderização.
func (s *Service) Snapshot() *domain.WorkflowSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Snapshot()
}

// reset devolve a sessão a KindNone e descarta o log de desfazer. Os dois
// sempre são limpos juntos — nunca um sem o outro.
func (s *Service) reset() {
	s.session = domain.WorkflowSession{Kind: domain.KindNone}
	s.undo.clear()
}

// beginSession inicializa o agregado raiz para um novo workflow.
func (s *Service) beginSession(kind domain.WorkflowKind) {
	s.session = domain.WorkflowSession{
		ID:        uuid.New().String(),
		Kind:      kind,
		StartedAt: time.Now(),
	}
}

// rejectForLookup converte um erro de repositório em Outcome: NotFoundError
// vira a mensagem de rejeição tipada; qualquer outra falha vira uma rejeição
// genérica registrada no log (nada propaga como fatal).
func (s *Service) rejectForLookup(err error, fallback string) domain.Outcome {
	if appErr, ok := err.(apperror.AppError); ok {
		if _, notFound := appErr.(*apperror.NotFoundError); notFound {
			return domain.Reject(appErr.Error(), s.session.Snapshot())
		}
	}
	s.logger.Error("Falha de consulta ao repositório.", err)
	return domain.Reject(fallback, s.session.Snapshot())
}

// displayID remove o prefixo reservado do identificador para exibição
// ("ord_1001" -> "1001").
func displayID(id string) string {
	if len(id) > 4 {
		switch id[:4] {
		case "ord_", "stc_", "loc_":
			return id[4:]
		}
	}
	return id
}
