package access

import "context"

type Repository interface {
	FindLabelsByEmail(ctx context.Context, email string) ([]string, error)
}
