package domain

// Location representa um endereço físico do armazém (zona/corredor/prateleira).
// Entidade de referência: movimentações e devoluções escrevem apenas uma
// mutação simulada sobre Items — o sistema de registro real é externo.
type Location struct {
	ID       string   `json:"id"`
	Zone     string   `json:"zone"`
	Aisle    string   `json:"aisle"`
	Shelf    string   `json:"shelf"`
	Label    string   `json:"label"` // Endereço legível, e.g. "QM1-1-1A"
	Capacity int      `json:"capacity"`
	Items    []string `json:"items"` // Códigos de barras dos itens armazenados aqui
}

// Holds indica se o item (pelo código de barras) consta neste local.
func (loc *Location) Holds(barcode string) bool {
	for _, b := range loc.Items {
		if b == barcode {
			return true
		}
	}
	return false
}
