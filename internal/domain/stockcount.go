package domain

// StockCount representa uma contagem cíclica de estoque em um local.
type StockCount struct {
	ID       string      `json:"id"`
	Location string      `json:"location"`
	Lines    []CountLine `json:"lines"`
}

// CountLine é uma linha da contagem. CountedQuantity é nil enquanto a linha
// ainda não foi contada; quando definida, é sempre um inteiro não-negativo.
type CountLine struct {
	Barcode          string `json:"barcode"`
	Name             string `json:"name"`
	SKU              string `json:"sku"`
	ExpectedQuantity int    `json:"expected_quantity"`
	CountedQuantity  *int   `json:"counted_quantity,omitempty"`
}

// Counted indica se a linha já recebeu uma contagem.
func (l CountLine) Counted() bool {
	return l.CountedQuantity != nil
}

// Line retorna um ponteiro para a linha com o código de barras informado,
// ou nil se o item não pertence à contagem.
func (c *StockCount) Line(barcode string) *CountLine {
	for i := range c.Lines {
		if c.Lines[i].Barcode == barcode {
			return &c.Lines[i]
		}
	}
	return nil
}

// AllCounted indica se todas as linhas já foram contadas. Assim como no
// pedido, apenas libera a confirmação manual de conclusão.
func (c *StockCount) AllCounted() bool {
	for _, l := range c.Lines {
		if !l.Counted() {
			return false
		}
	}
	return true
}
