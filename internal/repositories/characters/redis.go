package characters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/essence-sheet/internal/domain/character"
	sheeterr "github.com/KirkDiggler/essence-sheet/internal/errors"
)

const (
	charactersIndexKey = "characters"
	currentIDKey       = "metadata:" + CurrentCharacterKey
)

// redisRepo stores each character as a JSON blob and keeps a sorted set of ids
// scored by first insertion so GetAll can return them in creation order.
type redisRepo struct {
	client redis.UniversalClient
	clock  func() time.Time
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
	Clock  func() time.Time // Defaults to time.Now
}

// NewRedisRepository creates a new Redis-backed character repository
func NewRedisRepository(cfg *RedisRepoConfig) *redisRepo {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &redisRepo{
		client: cfg.Client,
		clock:  clock,
	}
}

func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("character:%s", id)
}

func (r *redisRepo) nameKey(name string) string {
	return fmt.Sprintf("characters:name:%s", strings.ToLower(strings.TrimSpace(name)))
}

// GetAll returns every character in insertion order
func (r *redisRepo) GetAll(ctx context.Context) ([]*character.Character, error) {
	ids, err := r.client.ZRange(ctx, charactersIndexKey, 0, -1).Result()
	if err != nil {
		return nil, sheeterr.Unavailable(err, "failed to list character IDs")
	}
	return r.getMany(ctx, ids)
}

// FindByName returns characters indexed under name, ignoring case
func (r *redisRepo) FindByName(ctx context.Context, name string) ([]*character.Character, error) {
	ids, err := r.client.SMembers(ctx, r.nameKey(name)).Result()
	if err != nil {
		return nil, sheeterr.Unavailable(err, "failed to read name index").WithMeta("name", name)
	}
	return r.getMany(ctx, ids)
}

func (r *redisRepo) getMany(ctx context.Context, ids []string) ([]*character.Character, error) {
	found := make([]*character.Character, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			char, err := r.get(gctx, id)
			if err != nil {
				return err
			}
			found[i] = char
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*character.Character, 0, len(found))
	for _, char := range found {
		if char != nil {
			result = append(result, char)
		}
	}
	return result, nil
}

// get returns nil without error for an indexed id whose record is gone
func (r *redisRepo) get(ctx context.Context, id string) (*character.Character, error) {
	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		log.Printf("CharacterRepository: index references missing record %s, skipping", id)
		return nil, nil
	}
	if err != nil {
		return nil, sheeterr.Unavailable(err, "failed to get character").WithMeta("character_id", id)
	}

	var char character.Character
	if unmarshalErr := json.Unmarshal([]byte(jsonData), &char); unmarshalErr != nil {
		return nil, sheeterr.WrapWithCode(unmarshalErr, sheeterr.CodeDataCorruption, "failed to unmarshal character").
			WithMeta("character_id", id)
	}
	return char.Normalize(), nil
}

// Put upserts a character and keeps the name index in step
func (r *redisRepo) Put(ctx context.Context, char *character.Character) error {
	if char == nil {
		return sheeterr.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		return sheeterr.InvalidArgument("character ID is required")
	}

	previousName, err := r.storedName(ctx, char.ID)
	if err != nil {
		return err
	}

	jsonData, err := json.Marshal(char)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(char.ID), string(jsonData), 0)
	pipe.ZAddNX(ctx, charactersIndexKey, redis.Z{Score: float64(r.clock().UnixNano()), Member: char.ID})
	if previousName != "" && r.nameKey(previousName) != r.nameKey(char.Name) {
		pipe.SRem(ctx, r.nameKey(previousName), char.ID)
	}
	pipe.SAdd(ctx, r.nameKey(char.Name), char.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return sheeterr.Unavailable(err, "failed to put character").WithMeta("character_id", char.ID)
	}
	return nil
}

// Delete removes a character and its index entries; unknown ids are a no-op
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return sheeterr.InvalidArgument("character ID is required")
	}

	name, err := r.storedName(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(id))
	pipe.ZRem(ctx, charactersIndexKey, id)
	if name != "" {
		pipe.SRem(ctx, r.nameKey(name), id)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return sheeterr.Unavailable(err, "failed to delete character").WithMeta("character_id", id)
	}
	return nil
}

// storedName returns the name currently stored for id, "" when absent
func (r *redisRepo) storedName(ctx context.Context, id string) (string, error) {
	existing, err := r.client.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", sheeterr.Unavailable(err, "failed to get existing character").WithMeta("character_id", id)
	}

	var stored struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(existing), &stored); err != nil {
		// The record is about to be overwritten or removed; the stale index entry is harmless
		log.Printf("CharacterRepository: unreadable record %s: %v", id, err)
		return "", nil
	}
	return stored.Name, nil
}

// GetCurrentID returns the persisted selection
func (r *redisRepo) GetCurrentID(ctx context.Context) (string, error) {
	id, err := r.client.Get(ctx, currentIDKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", sheeterr.Unavailable(err, "failed to get current character id")
	}
	return id, nil
}

// SetCurrentID persists the selection; "" removes it
func (r *redisRepo) SetCurrentID(ctx context.Context, id string) error {
	var err error
	if id == "" {
		err = r.client.Del(ctx, currentIDKey).Err()
	} else {
		err = r.client.Set(ctx, currentIDKey, id, 0).Err()
	}
	if err != nil {
		return sheeterr.Unavailable(err, "failed to set current character id").WithMeta("character_id", id)
	}
	return nil
}
