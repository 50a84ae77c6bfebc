package workflowservice

import (
	"context"
	"fmt"

	"scanflow/internal/barcode"
	"scanflow/internal/domain"
)

// startReturns abre uma devolução: um item avulso lido com a sessão ociosa
// (a categoria residual do classificador) precisa voltar para um endereço.
// Itens desconhecidos rejeitam sem transicionar.
func (s *Service) startReturns(ctx context.Context, c barcode.Classification) domain.Outcome {
	item, err := s.repo.FindItem(ctx, c.ID)
	if err != nil {
		return s.rejectForLookup(err, "item not found")
	}

	s.beginSession(domain.KindReturns)
	s.session.Return = &domain.ReturnState{
		Step: domain.ReturnStepScanLocation,
		Item: item,
	}

	s.logger.Info("Devolução iniciada.", map[string]interface{}{
		"item": item.Barcode, "name": item.Name,
	})
	return domain.Info(
		fmt.Sprintf("Return started for %s — scan a location", item.Name),
		s.session.Snapshot(),
	)
}

// returnScan processa uma leitura com a devolução ativa: apenas locais são
// aceitos no passo de destino.
func (s *Service) returnScan(ctx context.Context, c barcode.Classification) domain.Outcome {
	r := s.session.Return

	switch r.Step {
	case domain.ReturnStepScanLocation:
		if c.Kind != barcode.KindLocation {
			return domain.Reject("please scan a location barcode", s.session.Snapshot())
		}
		location, err := s.repo.FindLocation(ctx, c.ID)
		if err != nil {
			return s.rejectForLookup(err, "location not found")
		}
		r.Location = &location
		r.Step = domain.ReturnStepConfirm
		s.record(domain.UndoReturnStep, location.ID, nil)
		return domain.Info(
			fmt.Sprintf("Return %s to %s? Confirm to execute", r.Item.Name, location.Label),
			s.session.Snapshot(),
		)

	case domain.ReturnStepConfirm:
		return domain.Reject("confirm the return to finish", s.session.Snapshot())
	}

	return domain.Reject("invalid session state", s.session.Snapshot())
}

// returnConfirm executa a colocação simulada e encerra a devolução.
func (s *Service) returnConfirm() domain.Outcome {
	r := s.session.Return

	if r.Step != domain.ReturnStepConfirm || r.Location == nil {
		return domain.Reject("nothing to confirm", s.session.Snapshot())
	}

	item, label := r.Item.Name, r.Location.Label
	s.logger.Info("Devolução executada (simulada).", map[string]interface{}{
		"item": r.Item.Barcode, "location": r.Location.ID,
	})
	s.reset()
	return domain.Success(
		fmt.Sprintf("%s returned to %s", item, label),
		s.session.Snapshot(),
	)
}
