package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

type orderRow struct {
	model.Order
	CustomerName sql.NullString `db:"customer_name"`
}

func (r orderRow) toModel() model.Order {
	o := r.Order
	if r.CustomerName.Valid {
		o.Customer = &model.CustomerRef{Name: r.CustomerName.String}
	}
	return o
}

type itemRow struct {
	model.OrderItem
	ProductName sql.NullString `db:"product_name"`
}

const selectOrders = `
    SELECT o.id, o.customer_id, o.total_amount, o.discount, o.status, o.user_uid, o.created_at,
           c.name AS customer_name
    FROM orders o
    LEFT JOIN customers c ON c.id = o.customer_id
`

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	query := `
        WITH inserted AS (
            INSERT INTO orders (customer_id, total_amount, discount, status, user_uid, created_at)
            VALUES (:customer_id, :total_amount, :discount, :status, :user_uid, :created_at)
            RETURNING id, customer_id
        )
        SELECT i.id, c.name AS customer_name
        FROM inserted i
        LEFT JOIN customers c ON c.id = i.customer_id
    `
	stmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	var out struct {
		ID           int64          `db:"id"`
		CustomerName sql.NullString `db:"customer_name"`
	}
	if err := stmt.GetContext(ctx, &out, o); err != nil {
		return err
	}

	o.ID = out.ID
	if out.CustomerName.Valid {
		o.Customer = &model.CustomerRef{Name: out.CustomerName.String}
	}
	return nil
}

func (r *PGRepository) CreateItems(ctx context.Context, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
        INSERT INTO order_items (order_id, product_id, quantity, price)
        VALUES (:order_id, :product_id, :quantity, :price)
    `
	_, err := r.DB.NamedExecContext(ctx, query, items)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Order, error) {
	var row orderRow
	err := r.DB.GetContext(ctx, &row, selectOrders+" WHERE o.id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	o := row.toModel()
	items, err := r.itemsByOrder(ctx, []int64{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	var rows []orderRow
	if err := r.DB.SelectContext(ctx, &rows, selectOrders+" ORDER BY o.created_at DESC"); err != nil {
		return nil, err
	}

	orders := make([]model.Order, 0, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.toModel())
		ids = append(ids, row.ID)
	}

	items, err := r.itemsByOrder(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

func (r *PGRepository) FindRecent(ctx context.Context, limit int) ([]model.Order, error) {
	var rows []orderRow
	err := r.DB.SelectContext(ctx, &rows, selectOrders+" ORDER BY o.created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, err
	}

	orders := make([]model.Order, 0, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.toModel())
		ids = append(ids, row.ID)
	}

	items, err := r.itemsByOrder(ctx, ids)
	if err != nil {
		return nil, err
	}
	txs, err := r.transactionsByOrder(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items = items[orders[i].ID]
		orders[i].Transactions = txs[orders[i].ID]
	}
	return orders, nil
}

func (r *PGRepository) itemsByOrder(ctx context.Context, orderIDs []int64) (map[int64][]model.OrderItem, error) {
	out := make(map[int64][]model.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(`
        SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
               p.name AS product_name
        FROM order_items oi
        LEFT JOIN products p ON p.id = oi.product_id
        WHERE oi.order_id IN (?)
        ORDER BY oi.id
    `, orderIDs)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	var rows []itemRow
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	for _, row := range rows {
		item := row.OrderItem
		if row.ProductName.Valid {
			item.Product = &model.ProductRef{Name: row.ProductName.String}
		}
		out[item.OrderID] = append(out[item.OrderID], item)
	}
	return out, nil
}

func (r *PGRepository) transactionsByOrder(ctx context.Context, orderIDs []int64) (map[int64][]model.Transaction, error) {
	out := make(map[int64][]model.Transaction, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM transactions WHERE order_id IN (?) ORDER BY id`, orderIDs)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	var rows []model.Transaction
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	for _, t := range rows {
		if t.OrderID != nil {
			out[*t.OrderID] = append(out[*t.OrderID], t)
		}
	}
	return out, nil
}

func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	return err
}

func (r *PGRepository) DeleteItems(ctx context.Context, orderID int64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM order_items WHERE order_id = $1", orderID)
	return err
}
