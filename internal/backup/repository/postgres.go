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

func (r *PGRepository) Create(ctx context.Context, b *model.Backup) error {
	query := `
        INSERT INTO backups (old_body, record_type, user_uid, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	return r.DB.GetContext(ctx, &b.ID, query, b.OldBody, b.RecordType, b.UserUID, b.CreatedAt)
}
