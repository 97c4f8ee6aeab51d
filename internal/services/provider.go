package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/essence-sheet/internal/config"
	"github.com/KirkDiggler/essence-sheet/internal/dice"
	sheeterr "github.com/KirkDiggler/essence-sheet/internal/errors"
	"github.com/KirkDiggler/essence-sheet/internal/events"
	"github.com/KirkDiggler/essence-sheet/internal/repositories/characters"
	characterService "github.com/KirkDiggler/essence-sheet/internal/services/character"
	"github.com/KirkDiggler/essence-sheet/internal/services/transfer"
)

const redisPingTimeout = 5 * time.Second

// Provider holds all service instances
type Provider struct {
	Store    *characterService.Store
	Transfer *transfer.Service
	Roller   dice.Roller
	Bus      *events.Bus

	closers []func() error
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Config     *config.Config        // Required
	Repository characters.Repository // Overrides the configured backend
	Roller     dice.Roller           // Defaults to a random roller
}

// NewProvider opens the configured backend and builds the store on top of it.
// The store is empty until Load is called.
func NewProvider(ctx context.Context, cfg *ProviderConfig) (*Provider, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, sheeterr.InvalidArgument("provider config is required")
	}

	p := &Provider{Bus: events.NewBus()}

	repo := cfg.Repository
	if repo == nil {
		opened, closer, err := OpenRepository(ctx, cfg.Config.Storage)
		if err != nil {
			return nil, err
		}
		repo = opened
		p.closers = append(p.closers, closer)
	}

	p.Roller = cfg.Roller
	if p.Roller == nil {
		p.Roller = dice.NewRandomRoller()
	}

	p.Store = characterService.NewStore(&characterService.StoreConfig{
		Repository:   characters.NewTracedRepository(&characters.TracedRepoConfig{Repository: repo}),
		Bus:          p.Bus,
		WriteTimeout: cfg.Config.Storage.WriteTimeout,
		QuietWindow:  cfg.Config.Autosave.QuietWindow,
	})
	p.Transfer = transfer.NewService(nil)

	return p, nil
}

// Close drains the store and releases the backend
func (p *Provider) Close(ctx context.Context) error {
	errs := []error{p.Store.Close(ctx)}
	for _, closer := range p.closers {
		errs = append(errs, closer())
	}
	return errors.Join(errs...)
}

// OpenRepository connects to the configured backend. The returned func
// releases its connection.
func OpenRepository(ctx context.Context, cfg config.StorageConfig) (characters.Repository, func() error, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		log.Printf("Provider: opening sqlite store at %s", cfg.SQLitePath)
		repo, err := characters.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil

	case config.BackendRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, sheeterr.WrapWithCode(err, sheeterr.CodeInvalidArgument, "failed to parse redis url")
		}

		client := redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, sheeterr.Unavailable(err, "failed to connect to redis")
		}

		log.Printf("Provider: connected to redis at %s", opts.Addr)
		return characters.NewRedis(client), client.Close, nil

	case config.BackendMemory:
		log.Println("Provider: using in-memory store, nothing will survive exit")
		return characters.NewInMemoryRepository(), func() error { return nil }, nil
	}

	return nil, nil, sheeterr.InvalidArgumentf("unknown storage backend '%s'", cfg.Backend)
}
