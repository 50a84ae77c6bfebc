package domain

// Order representa um pedido de separação (picking). As linhas preservam a
// ordem original do pedido.
type Order struct {
	ID       string      `json:"id"`
	Customer string      `json:"customer"`
	Lines    []OrderLine `json:"lines"`
}

// OrderLine é uma linha do pedido: um item e as quantidades alvo/separadas.
// Invariante: 0 <= QuantityPicked <= QuantityNeeded, exceto quando um ajuste
// manual de supervisor define explicitamente um valor maior.
type OrderLine struct {
	Barcode        string `json:"barcode"`
	Name           string `json:"name"`
	SKU            string `json:"sku"`
	Location       string `json:"location"`
	QuantityNeeded int    `json:"quantity_needed"`
	QuantityPicked int    `json:"quantity_picked"`
	OutOfStock     bool   `json:"out_of_stock"`
}

// Satisfied indica se a linha atende o predicado de conclusão: quantidade
// atingida, ou linha marcada explicitamente como sem estoque.
func (l OrderLine) Satisfied() bool {
	return l.OutOfStock || l.QuantityPicked >= l.QuantityNeeded
}

// Line retorna um ponteiro para a linha com o código de barras informado,
// ou nil se o item não pertence ao pedido.
func (o *Order) Line(barcode string) *OrderLine {
	for i := range o.Lines {
		if o.Lines[i].Barcode == barcode {
			return &o.Lines[i]
		}
	}
	return nil
}

// AllComplete indica se todas as linhas do pedido atendem o predicado de
// conclusão. Recalculado após cada mutação; não dispara conclusão automática,
// apenas libera a ação de confirmação do operador.
func (o *Order) AllComplete() bool {
	for _, l := range o.Lines {
		if !l.Satisfied() {
			return false
		}
	}
	return true
}
