package memoryrepo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"scanflow/internal/domain"
	apperror "scanflow/internal/errors"
	"scanflow/internal/pkg/logger"
	"scanflow/internal/repository/memoryrepo"
)

func newRepo() *memoryrepo.Repository {
	return memoryrepo.NewRepository(logger.NewLogger("fatal"))
}

// TestFindOrder_Seed testa a busca de um pedido da carga de demonstração.
func TestFindOrder_Seed(t *testing.T) {
	repo := newRepo()

	order, err := repo.FindOrder(context.Background(), "ord_1001")

	assert.NoError(t, err)
	assert.Equal(t, "ord_1001", order.ID)
	assert.Len(t, order.Lines, 2)
	assert.Equal(t, "itm_501", order.Lines[0].Barcode)
	assert.Equal(t, 5, order.Lines[0].QuantityNeeded)
}

// TestFindOrder_NotFound testa pedido inexistente.
func TestFindOrder_NotFound(t *testing.T) {
	repo := newRepo()

	_, err := repo.FindOrder(context.Background(), "ord_9999")

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.Equal(t, "order not found", err.Error())
}

// TestFindOrder_ReturnsCopy garante que mutações do chamador não vazam de
// volta para o repositório — cada leitura deve ser independente.
func TestFindOrder_ReturnsCopy(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	first, err := repo.FindOrder(ctx, "ord_1001")
	assert.NoError(t, err)
	first.Lines[0].QuantityPicked = 99

	second, err := repo.FindOrder(ctx, "ord_1001")
	assert.NoError(t, err)
	assert.Equal(t, 0, second.Lines[0].QuantityPicked)
}

// TestFindStockCount_ReturnsCopy garante o mesmo isolamento para contagens,
// inclusive para o ponteiro de quantidade contada.
func TestFindStockCount_ReturnsCopy(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	first, err := repo.FindStockCount(ctx, "stc_2001")
	assert.NoError(t, err)
	counted := 7
	first.Lines[0].CountedQuantity = &counted

	second, err := repo.FindStockCount(ctx, "stc_2001")
	assert.NoError(t, err)
	assert.Nil(t, second.Lines[0].CountedQuantity)
}

// TestFindLocation_Seed testa a busca de local e a relação local-itens.
func TestFindLocation_Seed(t *testing.T) {
	repo := newRepo()

	loc, err := repo.FindLocation(context.Background(), "loc_3001")

	assert.NoError(t, err)
	assert.Equal(t, "QM1-1-1A", loc.Label)
	assert.True(t, loc.Holds("itm_501"))
}

// TestFindItem testa item existente e inexistente.
func TestFindItem(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	item, err := repo.FindItem(ctx, "itm_501")
	assert.NoError(t, err)
	assert.Equal(t, "Red Widget", item.Name)

	_, err = repo.FindItem(ctx, "itm_999")
	assert.Error(t, err)
	assert.Equal(t, "item not found", err.Error())
}

// TestAddOrder testa o cadastro de pedidos extras e suas validações.
func TestAddOrder(t *testing.T) {
	repo := newRepo()

	err := repo.AddOrder(domain.Order{ID: "ord_7777", Lines: []domain.OrderLine{
		{Barcode: "itm_501", Name: "Red Widget", QuantityNeeded: 1},
	}})
	assert.NoError(t, err)

	order, err := repo.FindOrder(context.Background(), "ord_7777")
	assert.NoError(t, err)
	assert.Len(t, order.Lines, 1)

	// Identificador vazio é rejeitado.
	err = repo.AddOrder(domain.Order{})
	assert.IsType(t, &apperror.ValidationError{}, err)

	// Identificador duplicado é rejeitado.
	err = repo.AddOrder(domain.Order{ID: "ord_1001"})
	assert.IsType(t, &apperror.ConflictError{}, err)
}
