package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/transaction/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, t *model.Transaction) error {
	query := `
        INSERT INTO transactions (
            order_id, payment_method_id, amount, category, type,
            status, description, user_uid, created_at
        )
        VALUES (
            :order_id, :payment_method_id, :amount, :category, :type,
            :status, :description, :user_uid, :created_at
        )
        RETURNING id
    `
	stmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	return stmt.GetContext(ctx, &t.ID, t)
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Transaction, error) {
	items := []model.Transaction{}
	err := r.DB.SelectContext(ctx, &items, `SELECT * FROM transactions ORDER BY created_at DESC`)
	return items, err
}

func (r *PGRepository) Update(ctx context.Context, in *dto.UpdateTransactionInput) (*model.Transaction, error) {
	sets := []string{"user_uid = :user_uid"}
	args := map[string]interface{}{
		"id":       in.ID,
		"user_uid": in.UserID,
	}

	if in.PaymentMethodID != nil {
		sets = append(sets, "payment_method_id = :payment_method_id")
		args["payment_method_id"] = *in.PaymentMethodID
	}
	if in.Amount != nil {
		sets = append(sets, "amount = :amount")
		args["amount"] = *in.Amount
	}
	if in.Category != nil {
		sets = append(sets, "category = :category")
		args["category"] = *in.Category
	}
	if in.Type != nil {
		sets = append(sets, "type = :type")
		args["type"] = string(*in.Type)
	}
	if in.Status != nil {
		sets = append(sets, "status = :status")
		args["status"] = *in.Status
	}
	if in.Description != nil {
		sets = append(sets, "description = :description")
		args["description"] = *in.Description
	}
	if in.CreatedAt != nil {
		sets = append(sets, "created_at = :created_at")
		args["created_at"] = *in.CreatedAt
	}

	query := "UPDATE transactions SET " + strings.Join(sets, ", ") + " WHERE id = :id RETURNING *"

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	var t model.Transaction
	err = nstmt.GetContext(ctx, &t, args)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM transactions WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *PGRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM transactions WHERE order_id = $1", orderID)
	return err
}
