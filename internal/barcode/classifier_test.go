package barcode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scanflow/internal/barcode"
)

// TestClassify_ReservedPrefixes testa o mapeamento dos três prefixos reservados.
func TestClassify_ReservedPrefixes(t *testing.T) {
	assert.Equal(t, barcode.Classification{Kind: barcode.KindOrder, ID: "ord_1001"}, barcode.Classify("ord_1001"))
	assert.Equal(t, barcode.Classification{Kind: barcode.KindStockCount, ID: "stc_2001"}, barcode.Classify("stc_2001"))
	assert.Equal(t, barcode.Classification{Kind: barcode.KindLocation, ID: "loc_3001"}, barcode.Classify("loc_3001"))
}

// TestClassify_ResidualItem testa a premissa de mundo fechado: qualquer
// string fora dos prefixos reservados é candidata a item.
func TestClassify_ResidualItem(t *testing.T) {
	for _, raw := range []string{"itm_501", "4006381333931", "abc", "ord", "ORD_1001"} {
		c := barcode.Classify(raw)
		assert.Equal(t, barcode.KindItem, c.Kind, "entrada: %q", raw)
		assert.Equal(t, raw, c.ID)
		assert.Nil(t, c.InlineOrder)
	}
}

// TestClassify_TrimsWhitespace testa que espaços em volta da leitura são ignorados.
func TestClassify_TrimsWhitespace(t *testing.T) {
	c := barcode.Classify("  ord_1001\n")
	assert.Equal(t, barcode.KindOrder, c.Kind)
	assert.Equal(t, "ord_1001", c.ID)
}

// TestClassify_InlineOrder testa a codificação secundária: um pedido
// auto-contido embutido em um único QR code.
func TestClassify_InlineOrder(t *testing.T) {
	payload := `{
		"order_id": "ord_9001",
		"customer": "Loja Azul",
		"items": [
			{"barcode": "itm_501", "name": "Red Widget", "sku": "RW-001", "location": "QM1-1-1A", "quantity": 3},
			{"barcode": "itm_502", "name": "Blue Widget", "sku": "BW-001", "location": "QM1-1-1A", "quantity": 1}
		]
	}`

	c := barcode.Classify(payload)

	assert.Equal(t, barcode.KindOrder, c.Kind)
	assert.Equal(t, "ord_9001", c.ID)
	if assert.NotNil(t, c.InlineOrder) {
		assert.Equal(t, "Loja Azul", c.InlineOrder.Customer)
		assert.Len(t, c.InlineOrder.Lines, 2)
		assert.Equal(t, 3, c.InlineOrder.Lines[0].QuantityNeeded)
		assert.Equal(t, 0, c.InlineOrder.Lines[0].QuantityPicked)
	}
}

// TestClassify_MalformedInlineFallsBack testa que entrada estruturada
// malformada cai na classificação por prefixo, nunca em erro.
func TestClassify_MalformedInlineFallsBack(t *testing.T) {
	cases := []string{
		`{"order_id": "ord_9001"`,                                 // JSON truncado
		`{"order_id": "", "items": [{"barcode":"x","quantity":1}]}`, // sem identificador
		`{"order_id": "ord_9001", "items": []}`,                   // sem itens
		`{"order_id": "ord_9001", "items": [{"barcode":"", "quantity": 1}]}`, // item sem barcode
		`{"order_id": "ord_9001", "items": [{"barcode":"x", "quantity": 0}]}`, // quantidade inválida
	}

	for _, raw := range cases {
		c := barcode.Classify(raw)
		assert.Nil(t, c.InlineOrder, "entrada: %q", raw)
		assert.Equal(t, barcode.KindItem, c.Kind, "entrada: %q", raw)
	}
}

// TestClassify_ShortInput testa entradas menores que o prefixo.
func TestClassify_ShortInput(t *testing.T) {
	c := barcode.Classify("ab")
	assert.Equal(t, barcode.KindItem, c.Kind)
	assert.Equal(t, "ab", c.ID)
}
