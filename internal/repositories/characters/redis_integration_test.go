//go:build integration
// +build integration

package characters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/essence-sheet/internal/repositories/characters"
	"github.com/KirkDiggler/essence-sheet/internal/testutils"
)

func TestRedisRepository_Integration(t *testing.T) {
	// This test requires Docker or a local Redis
	client := testutils.CreateTestRedisClientOrSkip(t)

	runRepositoryContract(t, func(t *testing.T) characters.Repository {
		require.NoError(t, client.FlushDB(context.Background()).Err())
		return characters.NewRedis(client)
	})
}

func TestRedisRepository_RenameUpdatesNameIndex(t *testing.T) {
	ctx := context.Background()
	client := testutils.CreateTestRedisClientOrSkip(t)
	repo := characters.NewRedisRepository(&characters.RedisRepoConfig{Client: client})

	char := testutils.CreateTestCharacter("char-1", "Old Name")
	require.NoError(t, repo.Put(ctx, char))

	char.Name = "Ragara Go"
	require.NoError(t, repo.Put(ctx, char))

	old, err := repo.FindByName(ctx, "old name")
	require.NoError(t, err)
	assert.Empty(t, old)

	renamed, err := repo.FindByName(ctx, "ragara go")
	require.NoError(t, err)
	require.Len(t, renamed, 1)
	assert.Equal(t, char, renamed[0])

	require.NoError(t, repo.Delete(ctx, "char-1"))
	members, err := client.SMembers(ctx, "characters:name:ragara go").Result()
	require.NoError(t, err)
	assert.Empty(t, members)
}
