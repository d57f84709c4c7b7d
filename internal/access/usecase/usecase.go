package usecase

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/access"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"go.uber.org/zap"
)

type accessGate struct {
	repo   access.Repository
	logger logger.ZapLogger
}

func NewAccessGate(repo access.Repository, log logger.ZapLogger) access.Gate {
	return &accessGate{
		repo:   repo,
		logger: log,
	}
}

func (g *accessGate) AllRolesGranted(ctx context.Context, email string, required []string) bool {
	if email == "" {
		return false
	}
	granted, ok := g.lookup(ctx, email)
	if !ok {
		return false
	}
	return access.HasAll(granted, required)
}

func (g *accessGate) AnyRoleGranted(ctx context.Context, email string, candidates []string) bool {
	if email == "" {
		return false
	}
	granted, ok := g.lookup(ctx, email)
	if !ok {
		return false
	}
	return access.HasAny(granted, candidates)
}

func (g *accessGate) AllGrantedLabels(ctx context.Context, email string) ([]string, error) {
	if email == "" {
		return []string{}, nil
	}
	return g.repo.FindLabelsByEmail(ctx, email)
}

// lookup treats a store error exactly like an account without grants.
func (g *accessGate) lookup(ctx context.Context, email string) ([]string, bool) {
	granted, err := g.repo.FindLabelsByEmail(ctx, email)
	if err != nil {
		g.logger.Warn("grant lookup failed, denying", zap.String("email", email), zap.Error(err))
		return nil, false
	}
	if len(granted) == 0 {
		return nil, false
	}
	return granted, true
}
