package workflowservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"scanflow/internal/domain"
	apperror "scanflow/internal/errors"
	"scanflow/internal/pkg/logger"
	"scanflow/internal/repository/memoryrepo"
	"scanflow/internal/service/workflowservice"
)

// newTestEngine monta o engine sobre o repositório em memória com o conjunto
// de demonstração (ord_1001, stc_2001, loc_3001/3002, itm_501...).
func newTestEngine() *workflowservice.Service {
	log := logger.NewLogger("error")
	repo := memoryrepo.NewRepository(log)
	return workflowservice.NewService(repo, log, 10, 10)
}

// MockRepository é uma implementação mock da interface Repository para os
// caminhos de falha de infraestrutura.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindOrder(ctx context.Context, id string) (domain.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockRepository) FindStockCount(ctx context.Context, id string) (domain.StockCount, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.StockCount), args.Error(1)
}

func (m *MockRepository) FindLocation(ctx context.Context, id string) (domain.Location, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Location), args.Error(1)
}

func (m *MockRepository) FindItem(ctx context.Context, barcode string) (domain.Item, error) {
	args := m.Called(ctx, barcode)
	return args.Get(0).(domain.Item), args.Error(1)
}

// TestSubmit_OrderLoad testa a abertura da separação por leitura de pedido.
func TestSubmit_OrderLoad(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	outcome := engine.Submit(ctx, "ord_1001")

	assert.Equal(t, domain.SeveritySuccess, outcome.Severity)
	assert.Equal(t, "Order 1001 loaded", outcome.Message)
	if assert.NotNil(t, outcome.Session) {
		assert.Equal(t, domain.KindPicking, outcome.Session.Kind)
		assert.Len(t, outcome.Session.Picking.Order.Lines, 2)
	}
}

// TestSubmit_UnknownOrder testa que lookup ausente rejeita sem transição:
// a sessão permanece ociosa.
func TestSubmit_UnknownOrder(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	outcome := engine.Submit(ctx, "ord_9999")

	assert.Equal(t, domain.SeverityError, outcome.Severity)
	assert.Equal(t, "order not found", outcome.Message)
	assert.Equal(t, domain.KindNone, outcome.Session.Kind)
}

// TestSubmit_SingleActiveSession testa o invariante central: com um workflow
// ativo, nenhum outro pode começar — a leitura vira rejeição tipada.
func TestSubmit_SingleActiveSession(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	engine.Submit(ctx, "ord_1001")

	// Uma leitura de contagem durante a separação não abre contagem.
	outcome := engine.Submit(ctx, "stc_2001")
	assert.Equal(t, domain.SeverityError, outcome.Severity)
	assert.Equal(t, "item doesn't exist in order", outcome.Message)
	assert.Equal(t, domain.KindPicking, outcome.Session.Kind)

	// Idem para um segundo pedido.
	outcome = engine.Submit(ctx, "ord_1002")
	assert.Equal(t, domain.SeverityError, outcome.Severity)
	assert.Equal(t, domain.KindPicking, outcome.Session.Kind)
}

// TestSubmit_WrongKindDuringStockCount reproduz o cenário 3 da especificação
// de testes: pedido lido durante contagem ativa é rejeitado sem mutação.
func TestSubmit_WrongKindDuringStockCount(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	outcome := engine.Submit(ctx, "stc_2001")
	assert.Equal(t, domain.SeveritySuccess, outcome.Severity)
	assert.Equal(t, "Stock count 2001 loaded", outcome.Message)

	outcome = engine.Submit(ctx, "ord_1002")
	assert.Equal(t, domain.SeverityError, outcome.Severity)
	assert.Equal(t, "item doesn't exist in stock count", outcome.Message)
	assert.Equal(t, domain.KindStockCount, outcome.Session.Kind)
	assert.Equal(t, domain.CountStepScanItem, outcome.Session.Count.Step)
}

// TestCancel_ClearsSessionAndUndoTogether testa que cancelar descarta sessão
// e log de desfazer juntos — nunca um sem o outro.
func TestCancel_ClearsSessionAndUndoTogether(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	engine.Submit(ctx, "ord_1001")
	engine.Submit(ctx, "itm_501") // gera uma entrada no log de desfazer

	outcome := engine.Cancel(ctx)
	assert.Equal(t, domain.SeveritySuccess, outcome.Severity)
	assert.Equal(t, "workflow cancelled", outcome.Message)
	assert.Equal(t, domain.KindNone, outcome.Session.Kind)

	// O log foi descartado junto com a sessão.
	outcome = engine.Undo(ctx)
	assert.Equal(t, domain.SeverityWarning, outcome.Severity)
	assert.Equal(t, "nothing to undo", outcome.Message)
}

// TestCancel_WithoutActiveWorkflow testa que cancelar com a sessão ociosa
// é inofensivo.
func TestCancel_WithoutActiveWorkflow(t *testing.T) {
	engine := newTestEngine()

	outcome := engine.Cancel(context.Background())

	assert.Equal(t, domain.SeverityInfo, outcome.Severity)
	assert.Equal(t, "no active workflow", outcome.Message)
}

// TestUndo_IdleSession testa que desfazer sem workflow ativo nunca muta estado.
func TestUndo_IdleSession(t *testing.T) {
	engine := newTestEngine()

	outcome := engine.Undo(context.Background())

	assert.Equal(t, domain.SeverityWarning, outcome.Severity)
	assert.Equal(t, "nothing to undo", outcome.Message)
	assert.Equal(t, domain.KindNone, outcome.Session.Kind)
}

// TestSubmit_EmptyScan testa a rejeição de leitura vazia.
func TestSubmit_EmptyScan(t *testing.T) {
	engine := newTestEngine()

	outcome := engine.Submit(context.Background(), "   ")

	assert.Equal(t, domain.SeverityError, outcome.Severity)
	assert.Equal(t, "empty scan", outcome.Message)
}

// TestSubmit_RepositoryInternalError testa que falha de infraestrutura no
// lookup vira rejeição recuperável — nada propaga como fatal e a sessão
// permanece ociosa.
func TestSubmit_RepositoryInternalError(t *testing.T) {
	mockRepo := new(MockRepository)
	log := logger.NewLogger("fatal")
	engine := workflowservice.NewService(mockRepo, log, 10, 10)

	mockRepo.On("FindOrder", mock.Anything, "ord_1001").
		Return(domain.Order{}, apperror.NewDBError("falha de conexão", assert.AnError))

	outcome := engine.Submit(context.Background(), "ord_1001")

	assert.Equal(t, domain.SeverityError, outcome.Severity)
	assert.Equal(t, "order not found", outcome.Message)
	assert.Equal(t, domain.KindNone, outcome.Session.Kind)
	mockRepo.AssertExpectations(t)
}

// TestActions_RequireActiveWorkflow testa as ações do operador com a sessão
// ociosa: todas rejeitam com a mesma mensagem.
func TestActions_RequireActiveWorkflow(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	for _, outcome := range []domain.Outcome{
		engine.Confirm(ctx),
		engine.Decline(ctx),
		engine.Complete(ctx),
	} {
		assert.Equal(t, domain.SeverityError, outcome.Severity)
		assert.Equal(t, "no active workflow", outcome.Message)
	}
}

// TestSnapshot_IsACopy testa que o snapshot entregue ao Adapter não expõe o
// estado vivo do engine.
func TestSnapshot_IsACopy(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	engine.Submit(ctx, "ord_1001")

	snap := engine.Snapshot()
	snap.Picking.Order.Lines[0].QuantityPicked = 99

	fresh := engine.Snapshot()
	assert.Equal(t, 0, fresh.Picking.Order.Lines[0].QuantityPicked)
}
