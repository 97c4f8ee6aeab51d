package characters

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/essence-sheet/internal/domain/character"
)

const tracerName = "characters"

// TracedRepository wraps a Repository and records a span per call
type TracedRepository struct {
	next   Repository
	tracer trace.Tracer
}

// TracedRepoConfig holds configuration for the tracing decorator
type TracedRepoConfig struct {
	Repository Repository
	Tracer     trace.Tracer // Defaults to the global provider's tracer
}

// NewTracedRepository wraps cfg.Repository
func NewTracedRepository(cfg *TracedRepoConfig) *TracedRepository {
	if cfg == nil {
		panic("TracedRepoConfig cannot be nil")
	}
	if cfg.Repository == nil {
		panic("repository cannot be nil")
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	return &TracedRepository{next: cfg.Repository, tracer: tracer}
}

func (t *TracedRepository) GetAll(ctx context.Context) ([]*character.Character, error) {
	ctx, span := t.tracer.Start(ctx, "characters.GetAll")
	defer span.End()

	chars, err := t.next.GetAll(ctx)
	if err != nil {
		fail(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("character_count", len(chars)))
	return chars, nil
}

func (t *TracedRepository) Put(ctx context.Context, char *character.Character) error {
	ctx, span := t.tracer.Start(ctx, "characters.Put")
	defer span.End()

	if char != nil {
		span.SetAttributes(attribute.String("character_id", char.ID))
	}
	if err := t.next.Put(ctx, char); err != nil {
		fail(span, err)
		return err
	}
	return nil
}

func (t *TracedRepository) Delete(ctx context.Context, id string) error {
	ctx, span := t.tracer.Start(ctx, "characters.Delete",
		trace.WithAttributes(attribute.String("character_id", id)))
	defer span.End()

	if err := t.next.Delete(ctx, id); err != nil {
		fail(span, err)
		return err
	}
	return nil
}

func (t *TracedRepository) GetCurrentID(ctx context.Context) (string, error) {
	ctx, span := t.tracer.Start(ctx, "characters.GetCurrentID")
	defer span.End()

	id, err := t.next.GetCurrentID(ctx)
	if err != nil {
		fail(span, err)
		return "", err
	}
	return id, nil
}

func (t *TracedRepository) SetCurrentID(ctx context.Context, id string) error {
	ctx, span := t.tracer.Start(ctx, "characters.SetCurrentID",
		trace.WithAttributes(attribute.String("character_id", id)))
	defer span.End()

	if err := t.next.SetCurrentID(ctx, id); err != nil {
		fail(span, err)
		return err
	}
	return nil
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
