package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/product"
	"github.com/fekuna/omnipos-backoffice-service/internal/product/dto"
	"github.com/fekuna/omnipos-backoffice-service/pkg/cache"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/fekuna/omnipos-backoffice-service/pkg/search"
	"go.uber.org/zap"
)

const (
	indexName       = "products"
	listCachePrefix = "products:list:"
	// Bumped on every write. List keys embed it so a list cached before a write is never read again.
	listGenerationKey = "products:list-generation"
)

const indexMapping = `{
	"mappings": {
		"properties": {
			"name": { "type": "text" },
			"description": { "type": "text" },
			"price": { "type": "double" },
			"user_uid": { "type": "keyword" },
			"created_at": { "type": "date" }
		}
	}
}`

type productUseCase struct {
	repo     product.Repository
	cache    *cache.RedisClient // nil disables list caching
	cacheTTL time.Duration
	es       *search.Client // nil disables the search index
	logger   logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, cacheTTL time.Duration, es *search.Client, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		es:       es,
		logger:   log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	userUID := input.UserID
	p := &model.Product{
		BaseModel:   model.BaseModel{CreatedAt: time.Now()},
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		UserUID:     &userUID,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.invalidateListCache(ctx)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error) {
	cacheKey, err := uc.generateCacheKey(ctx, filters)
	if err != nil {
		uc.logger.Warn("product cache unavailable", zap.Error(err))
	} else {
		val, ok, err := uc.cache.Get(ctx, cacheKey)
		if err != nil {
			uc.logger.Warn("product cache read failed", zap.Error(err))
		}
		if ok {
			var cached []model.Product
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	if filters.SearchQuery != "" && uc.es != nil {
		products, err := uc.searchElastic(ctx, filters.SearchQuery)
		switch {
		case err != nil:
			uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
		case len(products) > 0:
			return products, nil
		default:
			// Rows written outside this service are only in the database.
			uc.logger.Debug("ES search returned no hits, falling back to DB", zap.String("q", filters.SearchQuery))
		}
	}

	products, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if data, err := json.Marshal(products); err == nil {
			if err := uc.cache.Set(ctx, cacheKey, data, uc.cacheTTL); err != nil {
				uc.logger.Warn("product cache write failed", zap.Error(err))
			}
		}
	}

	return products, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.Update(ctx, input)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}

	uc.invalidateListCache(ctx)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) searchElastic(ctx context.Context, q string) ([]model.Product, error) {
	query := map[string]any{
		"query": map[string]any{
			"query_string": map[string]any{
				"query":  fmt.Sprintf("*%s*", q),
				"fields": []string{"name^3", "description"},
			},
		},
	}

	res, err := uc.es.Search(ctx, indexName, query)
	if err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err == nil {
			products = append(products, p)
		}
	}
	return products, nil
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	// Fails harmlessly once the index exists.
	_ = uc.es.CreateIndex(ctx, indexName, indexMapping)

	if err := uc.es.Index(ctx, indexName, strconv.FormatInt(p.ID, 10), p); err != nil {
		uc.logger.Error("failed to index product", zap.Int64("product_id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) generateCacheKey(ctx context.Context, filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	generation, ok, err := uc.cache.Get(ctx, listGenerationKey)
	if err != nil {
		return "", err
	}
	if !ok {
		generation = "0"
	}
	return fmt.Sprintf("%s%s:%x", listCachePrefix, generation, md5.Sum(data)), nil
}

// invalidateListCache runs before a write returns so the next list sees it.
func (uc *productUseCase) invalidateListCache(ctx context.Context) {
	if _, err := uc.cache.Incr(ctx, listGenerationKey); err != nil {
		uc.logger.Warn("failed to bump product cache generation", zap.Error(err))
	}
	if err := uc.cache.DeletePattern(ctx, listCachePrefix+"*"); err != nil {
		uc.logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
}
