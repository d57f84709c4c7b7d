package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindLabelsByEmail(ctx context.Context, email string) ([]string, error) {
	labels := []string{}
	err := r.DB.SelectContext(ctx, &labels, `SELECT role FROM role WHERE email = $1`, email)
	if err != nil {
		return nil, err
	}
	return labels, nil
}
