package characters_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/essence-sheet/internal/repositories/characters"
	mockcharacters "github.com/KirkDiggler/essence-sheet/internal/repositories/characters/mock"
	"github.com/KirkDiggler/essence-sheet/internal/testutils"
)

func newTracedRepo(t *testing.T, next characters.Repository) (*characters.TracedRepository, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	return characters.NewTracedRepository(&characters.TracedRepoConfig{
		Repository: next,
		Tracer:     provider.Tracer("characters-test"),
	}), recorder
}

func TestTracedRepository_Contract(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) characters.Repository {
		repo, _ := newTracedRepo(t, characters.NewInMemoryRepository())
		return repo
	})
}

func TestTracedRepository_RecordsSpans(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	next := mockcharacters.NewMockRepository(ctrl)
	repo, recorder := newTracedRepo(t, next)

	char := testutils.CreateTestCharacter("char-1", "Ragara Go")
	next.EXPECT().Put(gomock.Any(), char).Return(nil)
	next.EXPECT().Delete(gomock.Any(), "char-2").Return(errors.New("boom"))

	require.NoError(t, repo.Put(ctx, char))
	require.Error(t, repo.Delete(ctx, "char-2"))

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "characters.Put", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("character_id", "char-1"))
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	assert.Equal(t, "characters.Delete", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "boom", spans[1].Status().Description)
}

func TestNewTracedRepository_PanicsWithoutRepository(t *testing.T) {
	assert.Panics(t, func() {
		characters.NewTracedRepository(&characters.TracedRepoConfig{})
	})
	assert.Panics(t, func() {
		characters.NewTracedRepository(nil)
	})
}
