package memoryrepo

import "scanflow/internal/domain"

// seed popula o repositório com o conjunto de dados de demonstração usado
// pelo terminal de coleta fora de produção. Os identificadores seguem os
// prefixos reservados do classificador (ord_, stc_, loc_; itens sem prefixo
// reservado).
func (r *Repository) seed() {
	// Itens
	items := []domain.Item{
		{Barcode: "itm_501", Name: "Red Widget", SKU: "RW-001", Description: "Widget vermelho padrão"},
		{Barcode: "itm_502", Name: "Blue Widget", SKU: "BW-001", Description: "Widget azul padrão"},
		{Barcode: "itm_503", Name: "Green Gadget", SKU: "GG-010", Description: "Gadget verde compacto"},
		{Barcode: "itm_504", Name: "Steel Bracket", SKU: "SB-204", Description: "Suporte de aço galvanizado"},
	}
	for _, it := range items {
		r.items[it.Barcode] = it
	}

	// Locais
	locations := []domain.Location{
		{ID: "loc_3001", Zone: "QM1", Aisle: "1", Shelf: "1A", Label: "QM1-1-1A", Capacity: 40, Items: []string{"itm_501", "itm_502"}},
		{ID: "loc_3002", Zone: "QM1", Aisle: "1", Shelf: "2B", Label: "QM1-1-2B", Capacity: 40, Items: []string{"itm_503"}},
		{ID: "loc_3003", Zone: "QM2", Aisle: "4", Shelf: "3C", Label: "QM2-4-3C", Capacity: 60, Items: []string{"itm_504"}},
	}
	for _, loc := range locations {
		r.locations[loc.ID] = loc
	}

	// Pedidos
	r.orders["ord_1001"] = domain.Order{
		ID:       "ord_1001",
		Customer: "Acme Distribuidora",
		Lines: []domain.OrderLine{
			{Barcode: "itm_501", Name: "Red Widget", SKU: "RW-001", Location: "QM1-1-1A", QuantityNeeded: 5},
			{Barcode: "itm_502", Name: "Blue Widget", SKU: "BW-001", Location: "QM1-1-1A", QuantityNeeded: 2},
		},
	}
	r.orders["ord_1002"] = domain.Order{
		ID:       "ord_1002",
		Customer: "Mercado Central",
		Lines: []domain.OrderLine{
			{Barcode: "itm_503", Name: "Green Gadget", SKU: "GG-010", Location: "QM1-1-2B", QuantityNeeded: 12},
			{Barcode: "itm_504", Name: "Steel Bracket", SKU: "SB-204", Location: "QM2-4-3C", QuantityNeeded: 1},
		},
	}

	// Contagens de estoque
	r.counts["stc_2001"] = domain.StockCount{
		ID:       "stc_2001",
		Location: "QM1-1-1A",
		Lines: []domain.CountLine{
			{Barcode: "itm_501", Name: "Red Widget", SKU: "RW-001", ExpectedQuantity: 12},
			{Barcode: "itm_502", Name: "Blue Widget", SKU: "BW-001", ExpectedQuantity: 3},
		},
	}
}
