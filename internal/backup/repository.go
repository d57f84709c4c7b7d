package backup

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
)

// Repository is append-only; backups are never read back by this service.
type Repository interface {
	Create(ctx context.Context, b *model.Backup) error
}
