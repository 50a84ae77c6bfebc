package barcode

import (
	"encoding/json"
	"strings"

	"scanflow/internal/domain"
)

// Kind é a categoria semântica de um código de barras lido.
type Kind string

const (
	KindOrder      Kind = "order"
	KindStockCount Kind = "stock_count"
	KindLocation   Kind = "location"
	KindItem       Kind = "item"
)

// Prefixos reservados — os quatro primeiros caracteres do código.
const (
	prefixOrder      = "ord_"
	prefixStockCount = "stc_"
	prefixLocation   = "loc_"
)

// Classification é o resultado da classificação de uma leitura.
// Quando a leitura é um pedido embutido (QR code auto-contido), InlineOrder
// carrega o pedido já montado e a consulta ao repositório é dispensada.
type Classification struct {
	Kind        Kind
	ID          string
	InlineOrder *domain.Order
}

// inlinePayload é a codificação secundária aceita: um objeto JSON contendo o
// identificador do pedido e a lista de itens, gerado como QR code.
type inlinePayload struct {
	OrderID  string `json:"order_id"`
	Customer string `json:"customer"`
	Items    []struct {
		Barcode  string `json:"barcode"`
		Name     string `json:"name"`
		SKU      string `json:"sku"`
		Location string `json:"location"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
}

// Classify mapeia uma string lida para sua categoria semântica pela inspeção
// do prefixo. A função é pura, determinística e total: entrada não
// reconhecida classifica como Item (premissa de mundo fechado — itens não
// têm prefixo reservado) e é rejeitada adiante caso não exista.
func Classify(raw string) Classification {
	raw = strings.TrimSpace(raw)

	// 1. Codificação secundária: pedido embutido em um único QR code.
	// Entrada estruturada malformada cai na classificação por prefixo.
	if order, ok := parseInlineOrder(raw); ok {
		return Classification{Kind: KindOrder, ID: order.ID, InlineOrder: order}
	}

	// 2. Classificação por prefixo (quatro primeiros caracteres).
	if len(raw) >= 4 {
		switch raw[:4] {
		case prefixOrder:
			return Classification{Kind: KindOrder, ID: raw}
		case prefixStockCount:
			return Classification{Kind: KindStockCount, ID: raw}
		case prefixLocation:
			return Classification{Kind: KindLocation, ID: raw}
		}
	}

	// 3. Categoria residual: candidato a item.
	return Classification{Kind: KindItem, ID: raw}
}

// parseInlineOrder tenta interpretar a leitura como um pedido auto-contido.
// Retorna ok=false para qualquer payload que não seja um objeto JSON válido
// com identificador de pedido e ao menos um item utilizável.
func parseInlineOrder(raw string) (*domain.Order, bool) {
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}

	var payload inlinePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, false
	}
	if payload.OrderID == "" || len(payload.Items) == 0 {
		return nil, false
	}

	order := &domain.Order{
		ID:       payload.OrderID,
		Customer: payload.Customer,
		Lines:    make([]domain.OrderLine, 0, len(payload.Items)),
	}
	for _, it := range payload.Items {
		if it.Barcode == "" || it.Quantity <= 0 {
			return nil, false
		}
		order.Lines = append(order.Lines, domain.OrderLine{
			Barcode:        it.Barcode,
			Name:           it.Name,
			SKU:            it.SKU,
			Location:       it.Location,
			QuantityNeeded: it.Quantity,
		})
	}

	return order, true
}
