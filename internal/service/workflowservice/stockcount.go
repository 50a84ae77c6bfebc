package workflowservice

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"scanflow/internal/barcode"
	"scanflow/internal/domain"
)

// startStockCount abre um workflow de contagem a partir de uma leitura stc_.
func (s *Service) startStockCount(ctx context.Context, c barcode.Classification) domain.Outcome {
	count, err := s.repo.FindStockCount(ctx, c.ID)
	if err != nil {
		return s.rejectForLookup(err, "stock count not found")
	}

	s.beginSession(domain.KindStockCount)
	s.session.Count = &domain.CountState{
		Count: count,
		Step:  domain.CountStepScanItem,
	}

	s.logger.Info("Contagem iniciada.", map[string]interface{}{
		"count": count.ID, "location": count.Location, "lines": len(count.Lines),
	})
	return domain.Success(fmt.Sprintf("Stock count %s loaded", displayID(count.ID)), s.session.Snapshot())
}

// countScan processa uma leitura com a contagem ativa.
func (s *Service) countScan(c barcode.Classification) domain.Outcome {
	cs := s.session.Count

	// Uma leitura no meio da digitação de quantidade é inválida para o
	// passo: o operador precisa fechar a quantidade primeiro.
	if cs.Step == domain.CountStepEnterQuantity {
		return domain.Reject("enter the counted quantity first", s.session.Snapshot())
	}

	if c.Kind != barcode.KindItem {
		return domain.Reject("item doesn't exist in stock count", s.session.Snapshot())
	}

	line := cs.Count.Line(c.ID)
	if line == nil {
		return domain.Reject("item doesn't appear in the stock count", s.session.Snapshot())
	}

	if line.Counted() {
		// Ponto de decisão sim/não: recusar deixa o estado intocado.
		cs.PendingRecount = line.Barcode
		return domain.Info(
			fmt.Sprintf("%s already counted — confirm to recount", line.Name),
			s.session.Snapshot(),
		)
	}

	cs.ActiveBarcode = line.Barcode
	cs.Step = domain.CountStepEnterQuantity
	return domain.Info(
		fmt.Sprintf("enter the counted quantity for %s", line.Name),
		s.session.Snapshot(),
	)
}

// EnterQuantity recebe a quantidade digitada para a linha ativa da contagem.
// Entrada inválida (não-numérica, negativa) rejeita sem mutação e mantém o
// passo.
func (s *Service) EnterQuantity(ctx context.Context, raw string) domain.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.Kind != domain.KindStockCount {
		return domain.Reject("no stock count is active", s.session.Snapshot())
	}

	cs := s.session.Count
	if cs.Step != domain.CountStepEnterQuantity || cs.ActiveBarcode == "" {
		return domain.Reject("scan an item before entering a quantity", s.session.Snapshot())
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || quantity < 0 {
		return domain.Reject("quantity must be a non-negative number", s.session.Snapshot())
	}

	line := cs.Count.Line(cs.ActiveBarcode)
	if line == nil {
		// Linha ativa inexistente indica bug; volta ao passo de leitura.
		cs.ActiveBarcode = ""
		cs.Step = domain.CountStepScanItem
		return domain.Reject("scan an item before entering a quantity", s.session.Snapshot())
	}

	s.record(domain.UndoCountSet, line.Barcode, line.CountedQuantity)
	line.CountedQuantity = &quantity

	cs.ActiveBarcode = ""
	cs.Step = domain.CountStepScanItem

	s.logger.Debug("Linha contada.", map[string]interface{}{
		"count": cs.Count.ID, "barcode": line.Barcode,
		"counted": quantity, "expected": line.ExpectedQuantity,
	})
	return domain.Success(
		fmt.Sprintf("%s: counted %d (expected %d)", line.Name, quantity, line.ExpectedQuantity),
		s.session.Snapshot(),
	)
}

// countConfirm trata o clique de confirmação na contagem: recontagem
// pendente ou conclusão forçada pendente.
func (s *Service) countConfirm() domain.Outcome {
	cs := s.session.Count

	if cs.PendingRecount != "" {
		line := cs.Count.Line(cs.PendingRecount)
		cs.PendingRecount = ""
		if line == nil {
			return domain.Reject("nothing to confirm", s.session.Snapshot())
		}
		cs.ActiveBarcode = line.Barcode
		cs.Step = domain.CountStepEnterQuantity
		return domain.Info(
			fmt.Sprintf("enter the counted quantity for %s", line.Name),
			s.session.Snapshot(),
		)
	}

	if cs.PendingForceComplete {
		return s.finishStockCount()
	}

	return domain.Reject("nothing to confirm", s.session.Snapshot())
}

// countDecline descarta a pergunta pendente (recontagem ou conclusão
// forçada) sem mutar a contagem.
func (s *Service) countDecline() domain.Outcome {
	cs := s.session.Count

	if cs.PendingRecount != "" {
		cs.PendingRecount = ""
		return domain.Info("recount dismissed", s.session.Snapshot())
	}
	if cs.PendingForceComplete {
		cs.PendingForceComplete = false
		return domain.Info("completion cancelled", s.session.Snapshot())
	}
	return domain.Reject("nothing to decline", s.session.Snapshot())
}

// countComplete executa a ação explícita de conclusão da contagem, com gate
// de aviso quando ainda há linhas não contadas.
func (s *Service) countComplete() domain.Outcome {
	cs := s.session.Count

	if cs.Count.AllCounted() || cs.PendingForceComplete {
		return s.finishStockCount()
	}

	cs.PendingForceComplete = true
	return domain.Warn(
		"stock count has uncounted lines — confirm again to force complete",
		s.session.Snapshot(),
	)
}

// finishStockCount conclui a contagem e reseta a sessão.
func (s *Service) finishStockCount() domain.Outcome {
	countID := s.session.Count.Count.ID
	forced := !s.session.Count.Count.AllCounted()

	s.reset()
	s.logger.Info("Contagem concluída.", map[string]interface{}{
		"count": countID, "forced": forced,
	})
	return domain.Success(fmt.Sprintf("Stock count %s completed", displayID(countID)), s.session.Snapshot())
}
