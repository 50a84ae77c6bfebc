package memoryrepo

import (
	"context"
	"fmt"

	"scanflow/internal/domain"
	apperror "scanflow/internal/errors"
	"scanflow/internal/pkg/logger"
)

// Repository é o backend de consulta em memória usado no terminal de coleta.
// É o backend padrão: dados de referência pré-carregados, somente-leitura do
// ponto de vista do engine (mutação de workflow acontece no estado da sessão,
// nunca aqui). Pode ser trocado pelo backend postgres sem alterar o engine.
type Repository struct {
	orders    map[string]domain.Order
	counts    map[string]domain.StockCount
	locations map[string]domain.Location
	items     map[string]domain.Item
	logger    logger.Logger
}

// NewRepository cria o repositório em memória já populado com o conjunto de
// dados de demonstração.
func NewRepository(log logger.Logger) *Repository {
	r := &Repository{
		orders:    make(map[string]domain.Order),
		counts:    make(map[string]domain.StockCount),
		locations: make(map[string]domain.Location),
		items:     make(map[string]domain.Item),
		logger:    log,
	}
	r.seed()
	log.Debug("Repositório em memória populado.", map[string]interface{}{
		"orders":    len(r.orders),
		"counts":    len(r.counts),
		"locations": len(r.locations),
		"items":     len(r.items),
	})
	return r
}

// FindOrder busca um pedido pelo identificador.
// Retorna uma cópia: o chamador é dono do valor e pode mutá-lo livremente.
func (r *Repository) FindOrder(ctx context.Context, id string) (domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return domain.Order{}, apperror.NewNotFoundError("order not found")
	}
	order.Lines = append([]domain.OrderLine(nil), order.Lines...)
	return order, nil
}

// FindStockCount busca uma contagem de estoque pelo identificador.
func (r *Repository) FindStockCount(ctx context.Context, id string) (domain.StockCount, error) {
	count, ok := r.counts[id]
	if !ok {
		return domain.StockCount{}, apperror.NewNotFoundError("stock count not found")
	}
	lines := make([]domain.CountLine, len(count.Lines))
	for i, l := range count.Lines {
		if l.CountedQuantity != nil {
			q := *l.CountedQuantity
			l.CountedQuantity = &q
		}
		lines[i] = l
	}
	count.Lines = lines
	return count, nil
}

// FindLocation busca um local pelo identificador.
func (r *Repository) FindLocation(ctx context.Context, id string) (domain.Location, error) {
	loc, ok := r.locations[id]
	if !ok {
		return domain.Location{}, apperror.NewNotFoundError("location not found")
	}
	loc.Items = append([]string(nil), loc.Items...)
	return loc, nil
}

// FindItem busca um item pelo código de barras.
func (r *Repository) FindItem(ctx context.Context, barcode string) (domain.Item, error) {
	item, ok := r.items[barcode]
	if !ok {
		return domain.Item{}, apperror.NewNotFoundError("item not found")
	}
	return item, nil
}

// AddOrder registra um pedido adicional (usado em testes e na carga de demonstração).
func (r *Repository) AddOrder(order domain.Order) error {
	if order.ID == "" {
		return apperror.NewValidationError("O pedido precisa de um identificador.")
	}
	if _, exists := r.orders[order.ID]; exists {
		return apperror.NewConflictError(fmt.Sprintf("Pedido %s já cadastrado.", order.ID))
	}
	r.orders[order.ID] = order
	return nil
}
