package workflowservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"scanflow/internal/domain"
)

// undoLog é o histórico limitado de mutações reversíveis do workflow ativo.
// Ao exceder a profundidade, a entrada mais antiga é descartada. O log nunca
// cruza a fronteira entre workflows: reset da sessão sempre o esvazia.
type undoLog struct {
	depth   int
	entries []domain.UndoEntry
}

func newUndoLog(depth int) *undoLog {
	if depth <= 0 {
		depth = 10
	}
	return &undoLog{depth: depth}
}

// push adiciona uma entrada, descartando a mais antiga se necessário.
func (l *undoLog) push(e domain.UndoEntry) {
	l.entries = append(l.entries, e)
	if len(l.entries) > l.depth {
		l.entries = l.entries[1:]
	}
}

// pop remove e retorna a entrada mais recente.
func (l *undoLog) pop() (domain.UndoEntry, bool) {
	if len(l.entries) == 0 {
		return domain.UndoEntry{}, false
	}
	e := l.entries[len(l.entries)-1]
	l.entries = l.entries[:len(l.entries)-1]
	return e, true
}

func (l *undoLog) clear() {
	l.entries = nil
}

func (l *undoLog) size() int {
	return len(l.entries)
}

// record cria e registra uma entrada de desfazer para a mutação corrente.
func (s *Service) record(actionType domain.UndoActionType, barcode string, previous *int) {
	s.undo.push(domain.UndoEntry{
		ID:               uuid.New().String(),
		ActionType:       actionType,
		Barcode:          barcode,
		PreviousQuantity: previous,
		Timestamp:        time.Now(),
	})
}

// Undo aplica a inversa da última mutação registrada. Indisponível (aviso,
// sem mutação) com o log vazio, sem workflow ativo, ou após a conclusão —
// o log é esvaziado em todo reset, qualquer que seja a causa.
func (s *Service) Undo(ctx context.Context) domain.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.Active() {
		return domain.Warn("nothing to undo", s.session.Snapshot())
	}

	entry, ok := s.undo.pop()
	if !ok {
		return domain.Warn("nothing to undo", s.session.Snapshot())
	}

	s.logger.Debug("Aplicando inversa.", map[string]interface{}{
		"action": string(entry.ActionType), "barcode": entry.Barcode,
	})

	switch entry.ActionType {
	case domain.UndoPickIncrement:
		return s.undoPickIncrement(entry)
	case domain.UndoCountSet:
		return s.undoCountSet(entry)
	case domain.UndoMoveStep:
		return s.undoMoveStep()
	case domain.UndoReturnStep:
		return s.undoReturnStep()
	}

	// Tipo desconhecido no log indica bug; a entrada já foi removida e o
	// estado não foi tocado.
	s.logger.Error(fmt.Sprintf("Entrada de desfazer com tipo desconhecido: %s", entry.ActionType), nil)
	return domain.Warn("nothing to undo", s.session.Snapshot())
}

// undoPickIncrement restaura a quantidade separada anterior de uma linha.
func (s *Service) undoPickIncrement(entry domain.UndoEntry) domain.Outcome {
	p := s.session.Picking
	if p == nil || entry.PreviousQuantity == nil {
		return domain.Warn("nothing to undo", s.session.Snapshot())
	}
	line := p.Order.Line(entry.Barcode)
	if line == nil {
		return domain.Warn("nothing to undo", s.session.Snapshot())
	}

	line.QuantityPicked = *entry.PreviousQuantity
	// Desfazer uma linha reabre a conclusão forçada pendente, se houver.
	p.PendingForceComplete = false
	return domain.Success(
		fmt.Sprintf("undone — %s: %d/%d", line.Name, line.QuantityPicked, line.QuantityNeeded),
		s.session.Snapshot(),
	)
}

// undoCountSet restaura o valor contado anterior (ou o estado não-contado).
func (s *Service) undoCountSet(entry domain.UndoEntry) domain.Outcome {
	c := s.session.Count
	if c == nil {
		return domain.Warn("nothing to undo", s.session.Snapshot())
	}
	line := c.Count.Line(entry.Barcode)
	if line == nil {
		return domain.Warn("nothing to undo", s.session.Snapshot())
	}

	line.CountedQuantity = entry.PreviousQuantity
	c.PendingForceComplete = false
	if line.CountedQuantity == nil {
		return domain.Success(fmt.Sprintf("undone — %s is uncounted again", line.Name), s.session.Snapshot())
	}
	return domain.Success(
		fmt.Sprintf("undone — %s: counted %d", line.Name, *line.CountedQuantity),
		s.session.Snapshot(),
	)
}

// undoMoveStep retrocede um passo na movimentação de local.
func (s *Service) undoMoveStep() domain.Outcome {
	m := s.session.Move
	if m == nil {
		return domain.Warn("nothing to undo", s.session.Snapshot())
	}

	switch {
	case m.Destination != nil:
		m.Destination = nil
		m.Step = domain.MoveStepScanDestination
		return domain.Success("undone — scan the destination location", s.session.Snapshot())
	case m.Item != nil:
		m.Item = nil
		m.Step = domain.MoveStepScanItem
		return domain.Success("undone — scan an item to move", s.session.Snapshot())
	}
	return domain.Warn("nothing to undo", s.session.Snapshot())
}

// undoReturnStep retrocede um passo na devolução.
func (s *Service) undoReturnStep() domain.Outcome {
	r := s.session.Return
	if r == nil || r.Location == nil {
		return domain.Warn("nothing to undo", s.session.Snapshot())
	}

	r.Location = nil
	r.Step = domain.ReturnStepScanLocation
	return domain.Success("undone — scan a location for the return", s.session.Snapshot())
}
