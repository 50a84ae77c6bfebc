package postgresrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"scanflow/internal/domain"
	apperror "scanflow/internal/errors"
	"scanflow/internal/pkg/cache"
	"scanflow/internal/pkg/logger"
)

// Repository é o backend de consulta PostgreSQL. As entidades de referência
// mais lidas (itens e locais) passam por um cache read-through no Redis.
// Implementa o mesmo contrato do repositório em memória — o engine não
// distingue os backends.
type Repository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	Logger    logger.Logger
}

// NewRepository cria e retorna uma nova instância do Repositório.
// Aqui injetamos as dependências de Infraestrutura (DB e Cache).
func NewRepository(db *sql.DB, cacheClient cache.Client, dbTimeout time.Duration, log logger.Logger) *Repository {
	return &Repository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		Logger:    log,
	}
}

// FindOrder busca um pedido e suas linhas, preservando a ordem original.
func (r *Repository) FindOrder(ctx context.Context, id string) (domain.Order, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const orderSQL = `SELECT id, customer FROM orders WHERE id = $1`

	var order domain.Order
	err := r.DB.QueryRowContext(ctxTimeout, orderSQL, id).Scan(&order.ID, &order.Customer)
	if err == sql.ErrNoRows {
		return domain.Order{}, apperror.NewNotFoundError("order not found")
	}
	if err != nil {
		return domain.Order{}, apperror.NewDBError("falha ao consultar pedido", err)
	}

	const linesSQL = `SELECT barcode, name, sku, location, quantity_needed
                        FROM order_lines WHERE order_id = $1 ORDER BY position`

	rows, err := r.DB.QueryContext(ctxTimeout, linesSQL, id)
	if err != nil {
		return domain.Order{}, apperror.NewDBError("falha ao consultar linhas do pedido", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.Barcode, &l.Name, &l.SKU, &l.Location, &l.QuantityNeeded); err != nil {
			return domain.Order{}, apperror.NewDBError("falha ao ler linha do pedido", err)
		}
		order.Lines = append(order.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return domain.Order{}, apperror.NewDBError("falha ao iterar linhas do pedido", err)
	}

	return order, nil
}

// FindStockCount busca uma contagem e suas linhas (sempre não-contadas:
// a quantidade contada vive apenas na sessão de workflow).
func (r *Repository) FindStockCount(ctx context.Context, id string) (domain.StockCount, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const countSQL = `SELECT id, location FROM stock_counts WHERE id = $1`

	var count domain.StockCount
	err := r.DB.QueryRowContext(ctxTimeout, countSQL, id).Scan(&count.ID, &count.Location)
	if err == sql.ErrNoRows {
		return domain.StockCount{}, apperror.NewNotFoundError("stock count not found")
	}
	if err != nil {
		return domain.StockCount{}, apperror.NewDBError("falha ao consultar contagem", err)
	}

	const linesSQL = `SELECT barcode, name, sku, expected_quantity
                        FROM stock_count_lines WHERE count_id = $1 ORDER BY position`

	rows, err := r.DB.QueryContext(ctxTimeout, linesSQL, id)
	if err != nil {
		return domain.StockCount{}, apperror.NewDBError("falha ao consultar linhas da contagem", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.CountLine
		if err := rows.Scan(&l.Barcode, &l.Name, &l.SKU, &l.ExpectedQuantity); err != nil {
			return domain.StockCount{}, apperror.NewDBError("falha ao ler linha da contagem", err)
		}
		count.Lines = append(count.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return domain.StockCount{}, apperror.NewDBError("falha ao iterar linhas da contagem", err)
	}

	return count, nil
}

// FindLocation busca um local pelo identificador, com cache read-through.
func (r *Repository) FindLocation(ctx context.Context, id string) (domain.Location, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	cacheKey := "location:" + id
	if cached, err := r.Cache.Get(ctxTimeout, cacheKey); err == nil {
		var loc domain.Location
		if err := json.Unmarshal([]byte(cached), &loc); err == nil {
			return loc, nil
		}
		// Entrada corrompida: descarta e segue para o DB.
		r.Cache.Delete(ctxTimeout, cacheKey)
	}

	const locationSQL = `SELECT id, zone, aisle, shelf, label, capacity
                           FROM locations WHERE id = $1`

	var loc domain.Location
	err := r.DB.QueryRowContext(ctxTimeout, locationSQL, id).
		Scan(&loc.ID, &loc.Zone, &loc.Aisle, &loc.Shelf, &loc.Label, &loc.Capacity)
	if err == sql.ErrNoRows {
		return domain.Location{}, apperror.NewNotFoundError("location not found")
	}
	if err != nil {
		return domain.Location{}, apperror.NewDBError("falha ao consultar local", err)
	}

	const itemsSQL = `SELECT item_barcode FROM location_items WHERE location_id = $1`

	rows, err := r.DB.QueryContext(ctxTimeout, itemsSQL, id)
	if err != nil {
		return domain.Location{}, apperror.NewDBError("falha ao consultar itens do local", err)
	}
	defer rows.Close()

	for rows.Next() {
		var barcode string
		if err := rows.Scan(&barcode); err != nil {
			return domain.Location{}, apperror.NewDBError("falha ao ler item do local", err)
		}
		loc.Items = append(loc.Items, barcode)
	}
	if err := rows.Err(); err != nil {
		return domain.Location{}, apperror.NewDBError("falha ao iterar itens do local", err)
	}

	r.cacheSet(ctxTimeout, cacheKey, loc)
	return loc, nil
}

// FindItem busca um item pelo código de barras, com cache read-through.
func (r *Repository) FindItem(ctx context.Context, barcode string) (domain.Item, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	cacheKey := "item:" + barcode
	if cached, err := r.Cache.Get(ctxTimeout, cacheKey); err == nil {
		var item domain.Item
		if err := json.Unmarshal([]byte(cached), &item); err == nil {
			return item, nil
		}
		r.Cache.Delete(ctxTimeout, cacheKey)
	}

	const itemSQL = `SELECT barcode, name, sku, description FROM items WHERE barcode = $1`

	var item domain.Item
	err := r.DB.QueryRowContext(ctxTimeout, itemSQL, barcode).
		Scan(&item.Barcode, &item.Name, &item.SKU, &item.Description)
	if err == sql.ErrNoRows {
		return domain.Item{}, apperror.NewNotFoundError("item not found")
	}
	if err != nil {
		return domain.Item{}, apperror.NewDBError("falha ao consultar item", err)
	}

	r.cacheSet(ctxTimeout, cacheKey, item)
	return item, nil
}

// cacheSet serializa e grava a entidade no cache. Falha de cache nunca
// propaga — apenas registra.
func (r *Repository) cacheSet(ctx context.Context, key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, string(payload), 10*time.Minute); err != nil {
		r.Logger.Debug(fmt.Sprintf("Falha ao gravar %s no cache.", key), map[string]interface{}{"error": err.Error()})
	}
}
