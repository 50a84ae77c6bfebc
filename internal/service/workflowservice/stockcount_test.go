package workflowservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"scanflow/internal/domain"
)

// TestStockCount_CountFlow testa o ciclo leitura -> digitação de quantidade.
func TestStockCount_CountFlow(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	engine.Submit(ctx, "stc_2001")

	outcome := engine.Submit(ctx, "itm_501")
	assert.Equal(t, domain.SeverityInfo, outcome.Severity)
	assert.Equal(t, "enter the counted quantity for Red Widget", outcome.Message)
	assert.Equal(t, domain.CountStepEnterQuantity, outcome.Session.Count.Step)

	outcome = engine.EnterQuantity(ctx, "11")
	assert.Equal(t, domain.SeveritySuccess, outcome.Severity)
	assert.Equal(t, "Red Widget: counted 11 (expected 12)", outcome.Message)
	assert.Equal(t, domain.CountStepScanItem, outcome.Session.Count.Step)
	if assert.True(t, outcome.Session.Count.Count.Lines[0].Counted()) {
		assert.Equal(t, 11, *outcome.Session.Count.Count.Lines[0].CountedQuantity)
	}
}

// TestStockCount_InvalidQuantity testa entrada não-numérica e negativa:
// rejeição sem mutação, permanecendo no mesmo passo.
func TestStockCount_InvalidQuantity(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	engine.Submit(ctx, "stc_2001")
	engine.Submit(ctx, "itm_501")

	for _, raw := range []string{"abc", "-3", "1.5", ""} {
		outcome := engine.EnterQuantity(ctx, raw)
		assert.Equal(t, domain.SeverityError, outcome.Severity, "entrada: %q", raw)
		assert.Equal(t, "quantity must be a non-negative number", outcome.Message)
		assert.Equal(t, domain.CountStepEnterQuantity, outcome.Session.Count.Step)
		assert.False(t, outcome.Session.Count.Count.Lines[0].Counted())
	}

	// Zero é válido (local vazio).
	outcome := engine.EnterQuantity(ctx, "0")
	assert.Equal(t, domain.SeveritySuccess, outcome.Severity)
	assert.Equal(t, 0, *outcome.Session.Count.Count.Lines[0].CountedQuantity)
}

// TestStockCount_ScanWhileEnteringQuantity testa que uma leitura no meio da
// digitação é inválida para o passo.
func TestStockCount_ScanWhileEnteringQuantity(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	engine.Submit(ctx, "stc_2001")
	engine.Submit(ctx, "itm_501")

	outcome := engine.Submit(ctx, "itm_502")
	assert.Equal(t, domain.SeverityError, outcome.Severity)
	assert.Equal(t, "enter the counted quantity first", outcome.Message)
}

// TestStockCount_ItemNotInCount testa as duas rejeições de leitura: categoria
// errada e item ausente da contagem.
func TestStockCount_ItemNotInCount(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	engine.Submit(ctx, "stc_2001")

	outcome := engine.Submit(ctx, "loc_3001")
	assert.Equal(t, "item doesn't exist in stock count", outcome.Message)

	outcome = engine.Submit(ctx, "itm_503")
	assert.Equal(t, "item doesn't appear in the stock count", outcome.Message)
}

// TestStockCount_RecountFlow testa o ponto de decisão de recontagem:
// recusar deixa o valor intocado; confirmar reabre a digitação.
func TestStockCount_RecountFlow(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	engine.Submit(ctx, "stc_2001")
	engine.Submit(ctx, "itm_501")
	engine.EnterQuantity(ctx, "11")

	// Segunda leitura da mesma linha pergunta antes de recontar.
	outcome := engine.Submit(ctx, "itm_501")
	assert.Equal(t, domain.SeverityInfo, outcome.Severity)
	assert.Equal(t, "Red Widget already counted — confirm to recount", outcome.Message)

	// Recusar: valor preservado, passo inalterado.
	outcome = engine.Decline(ctx)
	assert.Equal(t, "recount dismissed", outcome.Message)
	assert.Equal(t, domain.CountStepScanItem, outcome.Session.Count.Step)
	assert.Equal(t, 11, *outcome.Session.Count.Count.Lines[0].CountedQuantity)

	// Confirmar: reabre a digitação e aceita o novo valor.
	engine.Submit(ctx, "itm_501")
	outcome = engine.Confirm(ctx)
	assert.Equal(t, "enter the counted quantity for Red Widget", outcome.Message)

	outcome = engine.EnterQuantity(ctx, "12")
	assert.Equal(t, domain.SeveritySuccess, outcome.Severity)
	assert.Equal(t, 12, *outcome.Session.Count.Count.Lines[0].CountedQuantity)
}

// TestStockCount_UndoRestoresPreviousValue testa a inversa da contagem:
// restaura o valor anterior, inclusive o estado não-contado.
func TestStockCount_UndoRestoresPreviousValue(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	engine.Submit(ctx, "stc_2001")
	engine.Submit(ctx, "itm_501")
	engine.EnterQuantity(ctx, "11")

	// Recontagem: 11 -> 12.
	engine.Submit(ctx, "itm_501")
	engine.Confirm(ctx)
	engine.EnterQuantity(ctx, "12")

	outcome := engine.Undo(ctx)
	assert.Equal(t, "undone — Red Widget: counted 11", outcome.Message)
	assert.Equal(t, 11, *outcome.Session.Count.Count.Lines[0].CountedQuantity)

	outcome = engine.Undo(ctx)
	assert.Equal(t, "undone — Red Widget is uncounted again", outcome.Message)
	assert.False(t, outcome.Session.Count.Count.Lines[0].Counted())
}

// TestStockCount_CompleteGate testa a conclusão manual com aviso quando há
// linhas não contadas.
func TestStockCount_CompleteGate(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	engine.Submit(ctx, "stc_2001")
	engine.Submit(ctx, "itm_501")
	engine.EnterQuantity(ctx, "12")

	// itm_502 ainda não contado: primeira tentativa avisa.
	outcome := engine.Complete(ctx)
	assert.Equal(t, domain.SeverityWarning, outcome.Severity)
	assert.Equal(t, "stock count has uncounted lines — confirm again to force complete", outcome.Message)

	outcome = engine.Complete(ctx)
	assert.Equal(t, domain.SeveritySuccess, outcome.Severity)
	assert.Equal(t, "Stock count 2001 completed", outcome.Message)
	assert.Equal(t, domain.KindNone, outcome.Session.Kind)
}

// TestStockCount_CompleteWhenAllCounted testa a conclusão direta com todas as
// linhas contadas.
func TestStockCount_CompleteWhenAllCounted(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	engine.Submit(ctx, "stc_2001")
	engine.Submit(ctx, "itm_501")
	engine.EnterQuantity(ctx, "12")
	engine.Submit(ctx, "itm_502")
	engine.EnterQuantity(ctx, "3")

	outcome := engine.Complete(ctx)
	assert.Equal(t, domain.SeveritySuccess, outcome.Severity)
	assert.Equal(t, "Stock count 2001 completed", outcome.Message)
}

// TestEnterQuantity_OutsideStockCount testa a digitação de quantidade fora
// da contagem.
func TestEnterQuantity_OutsideStockCount(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	outcome := engine.EnterQuantity(ctx, "5")
	assert.Equal(t, domain.SeverityError, outcome.Severity)
	assert.Equal(t, "no stock count is active", outcome.Message)

	engine.Submit(ctx, "stc_2001")
	outcome = engine.EnterQuantity(ctx, "5")
	assert.Equal(t, "scan an item before entering a quantity", outcome.Message)
}
