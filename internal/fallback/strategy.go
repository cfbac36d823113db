package fallback

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/adaptsync/adaptsync/internal/logger"
	"github.com/adaptsync/adaptsync/models"
)

// Level identifies one step of the degradation sequence. Levels only move
// forward within a single attempt chain.
type Level int

const (
	// LevelRequested queries with the caller-supplied field list.
	LevelRequested Level = iota + 1
	// LevelBasic queries with a fixed basic field set.
	LevelBasic
	// LevelMinimal queries with the minimal identifying field set.
	LevelMinimal
	// LevelSchema queries with the authoritative field list fetched from the
	// backend's schema introspection.
	LevelSchema
)

func (l Level) String() string {
	switch l {
	case LevelRequested:
		return "requested"
	case LevelBasic:
		return "basic"
	case LevelMinimal:
		return "minimal"
	case LevelSchema:
		return "schema"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

var (
	basicFields   = []string{"id", "name", "display_name", "created_at", "updated_at"}
	minimalFields = []string{"id", "name", "display_name"}
)

// QueryFunc issues the generic query with the given field projection.
type QueryFunc func(ctx context.Context, fields []string) (models.QueryResponse, error)

// DescribeFunc fetches the backend's authoritative field schema for the
// entity type being queried.
type DescribeFunc func(ctx context.Context) (models.FieldSchema, error)

// ExhaustedError is the terminal failure returned once every fallback level
// has been tried. It carries the accumulated bad-field list so the caller can
// diagnose a genuinely broken query.
type ExhaustedError struct {
	EntityType string
	BadFields  []string
	Err        error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("field fallback exhausted for %q (bad fields: %s): %v",
		e.EntityType, strings.Join(e.BadFields, ", "), e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }

// Strategy degrades a requested field set through ordered levels when the
// backend rejects part of it. A Strategy is stateless apart from the injected
// cache and may be shared by concurrent queries.
type Strategy struct {
	cache  BadFieldCache
	parser ErrorParser
}

// NewStrategy builds a Strategy around the shared bad-field cache and the
// backend-specific error parser.
func NewStrategy(cache BadFieldCache, parser ErrorParser) *Strategy {
	return &Strategy{cache: cache, parser: parser}
}

// Execute runs query with the requested field projection, degrading through
// the fallback levels whenever the backend rejects a field. Newly discovered
// bad fields are recorded in the shared cache so later attempt chains never
// retry them; cached fields that are not part of the current projection are
// left untouched, so a caller-specified field is only ever dropped when an
// error actually named it.
//
// Errors the parser cannot attribute to a field (transport, authorization,
// validation of the filter itself) abort the chain immediately and are
// returned unchanged. When LevelSchema also fails, Execute returns an
// *ExhaustedError wrapping the last backend error.
func (s *Strategy) Execute(ctx context.Context, entityType string, requested []string, query QueryFunc, describe DescribeFunc) (models.QueryResponse, error) {
	log := logger.FromContext(ctx)

	var lastErr error
	for level := LevelRequested; level <= LevelSchema; level++ {
		fields, err := s.fieldsForLevel(ctx, level, entityType, requested, describe)
		if err != nil {
			lastErr = err
			break
		}
		fields = s.prune(entityType, fields)
		if len(fields) == 0 {
			lastErr = fmt.Errorf("no usable fields at level %s for %q", level, entityType)
			continue
		}

		resp, err := s.runLevel(ctx, level, entityType, fields, query)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if _, ok := s.parser.InvalidField(err); !ok {
			// Not a schema mismatch: nothing a lower level could fix.
			return models.QueryResponse{}, err
		}

		log.Debug().
			Str("entity_type", entityType).
			Stringer("level", level).
			Msg("fallback level failed, degrading")
	}

	return models.QueryResponse{}, &ExhaustedError{
		EntityType: entityType,
		BadFields:  s.cache.Known(entityType),
		Err:        lastErr,
	}
}

// runLevel retries the query at one level, pruning each field the backend
// rejects, until the query succeeds, the level runs out of fields, or the
// error stops naming a field. Each retry must shrink the projection; an error
// naming a field outside it (a filter field, an aliased name) cannot be fixed
// by dropping fields, so it is handed back for the next level to deal with.
func (s *Strategy) runLevel(ctx context.Context, level Level, entityType string, fields []string, query QueryFunc) (models.QueryResponse, error) {
	lastErr := fmt.Errorf("no usable fields at level %s for %q", level, entityType)

	for len(fields) > 0 {
		resp, err := query(ctx, fields)
		if err == nil {
			return resp, nil
		}

		field, ok := s.parser.InvalidField(err)
		if !ok {
			return models.QueryResponse{}, err
		}

		s.cache.Add(entityType, field)
		remaining := remove(fields, field)
		if len(remaining) == len(fields) {
			return models.QueryResponse{}, err
		}
		fields = remaining
		lastErr = err
	}

	return models.QueryResponse{}, lastErr
}

func (s *Strategy) fieldsForLevel(ctx context.Context, level Level, entityType string, requested []string, describe DescribeFunc) ([]string, error) {
	switch level {
	case LevelRequested:
		return requested, nil
	case LevelBasic:
		return basicFields, nil
	case LevelMinimal:
		return minimalFields, nil
	case LevelSchema:
		schema, err := describe(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe fields for %q: %w", entityType, err)
		}
		names := schema.Names()
		sort.Strings(names)
		return names, nil
	default:
		return nil, fmt.Errorf("unknown fallback level %d", level)
	}
}

// prune drops fields already known bad for the entity type, preserving order.
func (s *Strategy) prune(entityType string, fields []string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if !s.cache.Contains(entityType, f) {
			out = append(out, f)
		}
	}
	return out
}

func remove(fields []string, field string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != field {
			out = append(out, f)
		}
	}
	return out
}
