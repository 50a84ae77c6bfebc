package workflowservice

import (
	"context"
	"fmt"

	"scanflow/internal/barcode"
	"scanflow/internal/domain"
)

// startPicking abre um workflow de separação a partir de uma leitura de
// pedido. Pedidos embutidos (QR auto-contido) dispensam o repositório.
func (s *Service) startPicking(ctx context.Context, c barcode.Classification) domain.Outcome {
	var order domain.Order

	if c.InlineOrder != nil {
		order = *c.InlineOrder
		s.logger.Info("Pedido embutido aceito.", map[string]interface{}{
			"order": order.ID, "lines": len(order.Lines),
		})
	} else {
		found, err := s.repo.FindOrder(ctx, c.ID)
		if err != nil {
			// Sessão permanece ociosa: nenhuma transição parcial.
			return s.rejectForLookup(err, "order not found")
		}
		order = found
	}

	s.beginSession(domain.KindPicking)
	s.session.Picking = &domain.PickingState{Order: order}

	s.logger.Info("Separação iniciada.", map[string]interface{}{
		"order": order.ID, "customer": order.Customer, "lines": len(order.Lines),
	})
	return domain.Success(fmt.Sprintf("Order %s loaded", displayID(order.ID)), s.session.Snapshot())
}

// pickingScan processa uma leitura com a separação ativa. Apenas códigos de
// item que pertencem às linhas do pedido avançam o estado.
func (s *Service) pickingScan(c barcode.Classification) domain.Outcome {
	p := s.session.Picking

	// Prefixo reservado (pedido, contagem, local) não é item deste pedido.
	if c.Kind != barcode.KindItem {
		return domain.Reject("item doesn't exist in order", s.session.Snapshot())
	}

	line := p.Order.Line(c.ID)
	if line == nil {
		return domain.Reject("item doesn't appear in the order", s.session.Snapshot())
	}

	if line.QuantityPicked >= line.QuantityNeeded {
		// Aviso sem mutação — e sem entrada no log de desfazer.
		return domain.Warn(fmt.Sprintf("%s already complete", line.Name), s.session.Snapshot())
	}

	previous := line.QuantityPicked
	s.record(domain.UndoPickIncrement, line.Barcode, &previous)
	line.QuantityPicked++

	s.logger.Debug("Linha separada.", map[string]interface{}{
		"order": p.Order.ID, "barcode": line.Barcode,
		"picked": line.QuantityPicked, "needed": line.QuantityNeeded,
	})
	return domain.Success(
		fmt.Sprintf("%s: %d/%d", line.Name, line.QuantityPicked, line.QuantityNeeded),
		s.session.Snapshot(),
	)
}

// pickingConfirm trata o clique de confirmação durante a separação: só há
// pergunta pendente quando uma conclusão forçada aguarda a segunda
// confirmação.
func (s *Service) pickingConfirm() domain.Outcome {
	if s.session.Picking.PendingForceComplete {
		return s.finishPicking()
	}
	return domain.Reject("nothing to confirm", s.session.Snapshot())
}

// pickingDecline descarta a conclusão forçada pendente.
func (s *Service) pickingDecline() domain.Outcome {
	p := s.session.Picking
	if p.PendingForceComplete {
		p.PendingForceComplete = false
		return domain.Info("completion cancelled", s.session.Snapshot())
	}
	return domain.Reject("nothing to decline", s.session.Snapshot())
}

// pickingComplete executa a ação explícita de conclusão. Com linhas
// pendentes, a primeira tentativa repergunta (confirmação de override) em
// vez de bloquear silenciosamente.
func (s *Service) pickingComplete() domain.Outcome {
	p := s.session.Picking

	if p.Order.AllComplete() || p.PendingForceComplete {
		return s.finishPicking()
	}

	p.PendingForceComplete = true
	return domain.Warn(
		"order has incomplete lines — confirm again to force complete",
		s.session.Snapshot(),
	)
}

// finishPicking conclui a separação e reseta a sessão (e o log de desfazer).
func (s *Service) finishPicking() domain.Outcome {
	orderID := s.session.Picking.Order.ID
	forced := !s.session.Picking.Order.AllComplete()

	s.reset()
	s.logger.Info("Separação concluída.", map[string]interface{}{
		"order": orderID, "forced": forced,
	})
	return domain.Success(fmt.Sprintf("Order %s completed", displayID(orderID)), s.session.Snapshot())
}

// SetPickedQuantity é o ajuste manual de quantidade, liberado apenas para
// linhas de alta quantidade (acima do limiar configurado) e protegido por
// autenticação de supervisor na borda. Define QuantityPicked diretamente,
// limitado à quantidade alvo.
func (s *Service) SetPickedQuantity(ctx context.Context, itemBarcode string, quantity int) domain.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.Kind != domain.KindPicking {
		return domain.Reject("no picking workflow is active", s.session.Snapshot())
	}

	line := s.session.Picking.Order.Line(itemBarcode)
	if line == nil {
		return domain.Reject("item doesn't appear in the order", s.session.Snapshot())
	}

	if line.QuantityNeeded <= s.highQuantityThreshold {
		return domain.Reject("manual entry is only available for high-quantity lines", s.session.Snapshot())
	}
	if quantity < 0 || quantity > line.QuantityNeeded {
		return domain.Reject("quantity must be between 0 and the needed amount", s.session.Snapshot())
	}

	previous := line.QuantityPicked
	s.record(domain.UndoPickIncrement, line.Barcode, &previous)
	line.QuantityPicked = quantity

	s.logger.Info("Quantidade ajustada manualmente.", map[string]interface{}{
		"order": s.session.Picking.Order.ID, "barcode": line.Barcode,
		"from": previous, "to": quantity,
	})
	return domain.Success(
		fmt.Sprintf("%s: %d/%d", line.Name, line.QuantityPicked, line.QuantityNeeded),
		s.session.Snapshot(),
	)
}

// MarkOutOfStock sinaliza que uma linha não pode ser atendida por falta de
// estoque. Linhas assim marcadas contam como satisfeitas para o gate de
// conclusão.
func (s *Service) MarkOutOfStock(ctx context.Context, itemBarcode string) domain.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.Kind != domain.KindPicking {
		return domain.Reject("no picking workflow is active", s.session.Snapshot())
	}

	line := s.session.Picking.Order.Line(itemBarcode)
	if line == nil {
		return domain.Reject("item doesn't appear in the order", s.session.Snapshot())
	}
	if line.OutOfStock {
		return domain.Warn(fmt.Sprintf("%s already flagged out of stock", line.Name), s.session.Snapshot())
	}

	line.OutOfStock = true
	s.logger.Info("Linha marcada como sem estoque.", map[string]interface{}{
		"order": s.session.Picking.Order.ID, "barcode": line.Barcode,
	})
	return domain.Info(fmt.Sprintf("%s flagged out of stock", line.Name), s.session.Snapshot())
}
