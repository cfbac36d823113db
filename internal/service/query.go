package service

import (
	"context"

	"github.com/adaptsync/adaptsync/internal/adapter"
	"github.com/adaptsync/adaptsync/internal/fallback"
	"github.com/adaptsync/adaptsync/internal/logger"
	"github.com/adaptsync/adaptsync/models"
)

type queryService struct {
	adapter  adapter.ServerAdapter
	strategy *fallback.Strategy
	logger   *logger.Logger
}

// NewQueryService returns a [QueryService] that degrades projections through
// the field fallback strategy instead of surfacing invalid-field errors.
func NewQueryService(serverAdapter adapter.ServerAdapter, strategy *fallback.Strategy, logger *logger.Logger) QueryService {
	return &queryService{
		adapter:  serverAdapter,
		strategy: strategy,
		logger:   logger,
	}
}

func (s *queryService) Query(ctx context.Context, req models.QueryRequest) (models.QueryResponse, error) {
	query := func(ctx context.Context, fields []string) (models.QueryResponse, error) {
		attempt := req
		attempt.Fields = fields
		return s.adapter.Query(ctx, attempt)
	}

	describe := func(ctx context.Context) (models.FieldSchema, error) {
		return s.adapter.DescribeFields(ctx, req.EntityType)
	}

	return s.strategy.Execute(ctx, req.EntityType, req.Fields, query, describe)
}
