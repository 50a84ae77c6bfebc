package workflowservice

import (
	"context"
	"fmt"

	"scanflow/internal/barcode"
	"scanflow/internal/domain"
)

// startLocationMove abre uma movimentação a partir de uma leitura de local
// com a sessão ociosa. A primeira etapa é confirmar o local de origem.
func (s *Service) startLocationMove(ctx context.Context, c barcode.Classification) domain.Outcome {
	source, err := s.repo.FindLocation(ctx, c.ID)
	if err != nil {
		return s.rejectForLookup(err, "location not found")
	}

	s.beginSession(domain.KindLocationMove)
	s.session.Move = &domain.MoveState{
		Step:   domain.MoveStepConfirmSource,
		Source: source,
	}

	s.logger.Info("Movimentação iniciada.", map[string]interface{}{
		"source": source.ID, "label": source.Label,
	})
	return domain.Info(
		fmt.Sprintf("Move items from %s? Confirm to continue", source.Label),
		s.session.Snapshot(),
	)
}

// moveScan processa uma leitura com a movimentação ativa. Cada passo aceita
// exatamente uma categoria de código.
func (s *Service) moveScan(ctx context.Context, c barcode.Classification) domain.Outcome {
	m := s.session.Move

	switch m.Step {
	case domain.MoveStepConfirmSource:
		return domain.Reject("confirm the source location first", s.session.Snapshot())

	case domain.MoveStepScanItem:
		// A classificação precisa ser exatamente Item: qualquer prefixo
		// reservado é rejeitado aqui.
		if c.Kind != barcode.KindItem {
			return domain.Reject("please scan an item to move", s.session.Snapshot())
		}
		item, err := s.repo.FindItem(ctx, c.ID)
		if err != nil {
			// Item inexistente é uma rejeição distinta da categoria errada.
			return s.rejectForLookup(err, "item not found")
		}
		m.Item = &item
		m.Step = domain.MoveStepScanDestination
		s.record(domain.UndoMoveStep, item.Barcode, nil)
		return domain.Info("scan the destination location", s.session.Snapshot())

	case domain.MoveStepScanDestination:
		if c.Kind != barcode.KindLocation {
			return domain.Reject("please scan a location barcode", s.session.Snapshot())
		}
		destination, err := s.repo.FindLocation(ctx, c.ID)
		if err != nil {
			// Falha de lookup mantém o passo.
			return s.rejectForLookup(err, "location not found")
		}
		m.Destination = &destination
		m.Step = domain.MoveStepConfirmMove
		s.record(domain.UndoMoveStep, destination.ID, nil)
		return domain.Info(
			fmt.Sprintf("Move %s from %s to %s? Confirm to execute", m.Item.Name, m.Source.Label, destination.Label),
			s.session.Snapshot(),
		)

	case domain.MoveStepConfirmMove:
		return domain.Reject("confirm the move to finish", s.session.Snapshot())
	}

	return domain.Reject("invalid session state", s.session.Snapshot())
}

// moveConfirm avança a movimentação no ponto de decisão atual. A execução em
// ConfirmMove é simulada: o sistema de registro real do estoque é externo —
// aqui apenas registramos e emitimos o resultado.
func (s *Service) moveConfirm() domain.Outcome {
	m := s.session.Move

	switch m.Step {
	case domain.MoveStepConfirmSource:
		m.Step = domain.MoveStepScanItem
		return domain.Info("scan an item to move", s.session.Snapshot())

	case domain.MoveStepScanItem, domain.MoveStepScanDestination:
		return domain.Reject("nothing to confirm", s.session.Snapshot())

	case domain.MoveStepConfirmMove:
		item, source, destination := m.Item.Name, m.Source.Label, m.Destination.Label
		s.logger.Info("Movimentação executada (simulada).", map[string]interface{}{
			"item": m.Item.Barcode, "from": m.Source.ID, "to": m.Destination.ID,
		})
		s.reset()
		return domain.Success(
			fmt.Sprintf("%s moved from %s to %s", item, source, destination),
			s.session.Snapshot(),
		)
	}

	return domain.Reject("invalid session state", s.session.Snapshot())
}
