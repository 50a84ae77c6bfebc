package domain

// Item representa um produto físico do catálogo, identificado pelo código de
// barras. É uma entidade de referência somente-leitura para os workflows.
type Item struct {
	Barcode     string `json:"barcode"`
	Name        string `json:"name"`
	SKU         string `json:"sku"` // Stock Keeping Unit (código único de produto)
	Description string `json:"description"`
}
