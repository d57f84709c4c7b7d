package repository

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.PaymentMethod, error) {
	methods := []model.PaymentMethod{}
	err := r.DB.SelectContext(ctx, &methods, `SELECT id, name, created_at FROM payment_methods ORDER BY id`)
	return methods, err
}
