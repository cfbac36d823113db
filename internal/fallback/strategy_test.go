package fallback

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/adaptsync/adaptsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend answers queries like a backend that only knows goodFields and
// rejects everything else with the documented error phrasing.
type fakeBackend struct {
	goodFields map[string]struct{}
	calls      [][]string
	describes  int
	schema     models.FieldSchema
	schemaErr  error
}

func newFakeBackend(good ...string) *fakeBackend {
	set := make(map[string]struct{}, len(good))
	schema := make(models.FieldSchema, len(good))
	for _, f := range good {
		set[f] = struct{}{}
		schema[f] = models.FieldDescription{Name: f, Type: "char"}
	}
	return &fakeBackend{goodFields: set, schema: schema}
}

func (b *fakeBackend) query(_ context.Context, fields []string) (models.QueryResponse, error) {
	b.calls = append(b.calls, append([]string(nil), fields...))
	for _, f := range fields {
		if _, ok := b.goodFields[f]; !ok {
			return models.QueryResponse{}, fmt.Errorf("backend: Invalid field '%s' on model", f)
		}
	}
	return models.QueryResponse{Records: []models.ValueMap{{}}, Total: 1}, nil
}

func (b *fakeBackend) describe(_ context.Context) (models.FieldSchema, error) {
	b.describes++
	if b.schemaErr != nil {
		return nil, b.schemaErr
	}
	return b.schema, nil
}

func newTestStrategy(t *testing.T) (*Strategy, BadFieldCache) {
	t.Helper()
	cache := NewMemoryBadFieldCache()
	return NewStrategy(cache, NewQuotedFieldParser()), cache
}

// ── Execute ─────────────────────────────────────────────────────────────────

func TestExecute_AllFieldsValid_SingleCall(t *testing.T) {
	s, _ := newTestStrategy(t)
	backend := newFakeBackend("id", "name")

	resp, err := s.Execute(context.Background(), "widget", []string{"id", "name"}, backend.query, backend.describe)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Len(t, backend.calls, 1)
	assert.Equal(t, 0, backend.describes)
}

func TestExecute_PrunesRejectedFieldAndRetriesSameLevel(t *testing.T) {
	s, cache := newTestStrategy(t)
	backend := newFakeBackend("id", "name")

	resp, err := s.Execute(context.Background(), "widget", []string{"id", "name", "ghost_field"}, backend.query, backend.describe)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, backend.calls, 2)
	assert.Equal(t, []string{"id", "name", "ghost_field"}, backend.calls[0])
	assert.Equal(t, []string{"id", "name"}, backend.calls[1])
	assert.Equal(t, []string{"ghost_field"}, cache.Known("widget"))
}

func TestExecute_CachedBadFieldNeverRetried(t *testing.T) {
	s, cache := newTestStrategy(t)
	cache.Add("widget", "ghost_field")
	backend := newFakeBackend("id", "name")

	_, err := s.Execute(context.Background(), "widget", []string{"id", "name", "ghost_field"}, backend.query, backend.describe)

	require.NoError(t, err)
	require.Len(t, backend.calls, 1)
	assert.Equal(t, []string{"id", "name"}, backend.calls[0])
}

func TestExecute_DegradesToBasicLevel(t *testing.T) {
	s, _ := newTestStrategy(t)
	// Backend only knows the basic columns; the exotic projection fails.
	backend := newFakeBackend("id", "name", "display_name", "created_at", "updated_at")

	resp, err := s.Execute(context.Background(), "widget", []string{"turbo_mode"}, backend.query, backend.describe)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	// Last call must be the basic set minus the cached bad field.
	last := backend.calls[len(backend.calls)-1]
	assert.Equal(t, []string{"id", "name", "display_name", "created_at", "updated_at"}, last)
}

func TestExecute_SchemaLevelUsedWhenFixedSetsRejected(t *testing.T) {
	s, _ := newTestStrategy(t)
	backend := newFakeBackend("uid", "label")

	resp, err := s.Execute(context.Background(), "widget", []string{"uid", "bogus"}, backend.query, backend.describe)

	// Level 1 prunes "bogus" then succeeds with {"uid"}; schema never needed.
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 0, backend.describes)

	// Now force a chain that reaches the schema level.
	backend2 := newFakeBackend("uid", "label")
	resp, err = s.Execute(context.Background(), "gadget", []string{"bogus"}, backend2.query, backend2.describe)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 1, backend2.describes)
	last := backend2.calls[len(backend2.calls)-1]
	assert.Equal(t, []string{"label", "uid"}, last)
}

func TestExecute_Exhausted(t *testing.T) {
	s, cache := newTestStrategy(t)
	backend := newFakeBackend() // backend rejects every field

	_, err := s.Execute(context.Background(), "widget", []string{"id", "name"}, backend.query, backend.describe)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "widget", exhausted.EntityType)
	assert.NotEmpty(t, exhausted.BadFields)
	assert.Equal(t, cache.Known("widget"), exhausted.BadFields)
	assert.Equal(t, 1, backend.describes)
}

func TestExecute_NonFieldErrorAbortsImmediately(t *testing.T) {
	s, _ := newTestStrategy(t)
	boom := errors.New("upstream timed out")
	query := func(context.Context, []string) (models.QueryResponse, error) {
		return models.QueryResponse{}, boom
	}
	describe := func(context.Context) (models.FieldSchema, error) {
		t.Fatal("describe must not be called")
		return nil, nil
	}

	_, err := s.Execute(context.Background(), "widget", []string{"id"}, query, describe)

	assert.ErrorIs(t, err, boom)
}

func TestExecute_DescribeFailure_Exhausts(t *testing.T) {
	s, _ := newTestStrategy(t)
	backend := newFakeBackend()
	backend.schemaErr = errors.New("introspection disabled")

	_, err := s.Execute(context.Background(), "widget", []string{"id"}, backend.query, backend.describe)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.ErrorContains(t, err, "introspection disabled")
}

func TestExecute_ErrorNamingFieldOutsideProjection_Terminates(t *testing.T) {
	s, cache := newTestStrategy(t)

	// The backend keeps blaming a field that is not part of any projection
	// (it lives in the domain filter). Dropping projection fields cannot fix
	// that, so each level must give up after a single call.
	calls := 0
	query := func(context.Context, []string) (models.QueryResponse, error) {
		calls++
		return models.QueryResponse{}, errors.New("backend: Invalid field 'filter_ghost' in domain filter")
	}
	describes := 0
	describe := func(context.Context) (models.FieldSchema, error) {
		describes++
		return models.FieldSchema{"id": {Name: "id", Type: "integer"}}, nil
	}

	_, err := s.Execute(context.Background(), "widget", []string{"id", "name"}, query, describe)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 4, calls, "one call per level, no retries within a level")
	assert.Equal(t, 1, describes)
	assert.Contains(t, cache.Known("widget"), "filter_ghost")
}

// ── parser ──────────────────────────────────────────────────────────────────

func TestQuotedFieldParser_Variants(t *testing.T) {
	p := NewQuotedFieldParser()

	cases := []struct {
		text  string
		field string
		ok    bool
	}{
		{"Invalid field 'ghost_field' on model 'widget'", "ghost_field", true},
		{`Invalid field "ghost_field"`, "ghost_field", true},
		{"invalid field `ghost_field`", "ghost_field", true},
		{"Invalid field ghost_field", "ghost_field", true},
		{"permission denied", "", false},
		{"record not found", "", false},
	}

	for _, tc := range cases {
		field, ok := p.InvalidField(errors.New(tc.text))
		assert.Equal(t, tc.ok, ok, tc.text)
		assert.Equal(t, tc.field, field, tc.text)
	}
}

func TestQuotedFieldParser_NilError(t *testing.T) {
	p := NewQuotedFieldParser()
	_, ok := p.InvalidField(nil)
	assert.False(t, ok)
}
