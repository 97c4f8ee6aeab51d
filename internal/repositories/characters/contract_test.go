package characters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/essence-sheet/internal/domain/character"
	"github.com/KirkDiggler/essence-sheet/internal/repositories/characters"
	"github.com/KirkDiggler/essence-sheet/internal/testutils"
)

// runRepositoryContract exercises the behaviour every backend must share.
// newRepo must return an empty repository on each call.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) characters.Repository) {
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		repo := newRepo(t)

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)

		current, err := repo.GetCurrentID(ctx)
		require.NoError(t, err)
		assert.Equal(t, "", current)
	})

	t.Run("put and get all round trips the record", func(t *testing.T) {
		repo := newRepo(t)
		char := testutils.CreateTestCharacter("char-1", "Ragara Go")

		require.NoError(t, repo.Put(ctx, char))

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, char, all[0])
	})

	t.Run("insertion order survives updates", func(t *testing.T) {
		repo := newRepo(t)
		first := testutils.CreateTestCharacter("char-1", "First")
		second := testutils.CreateTestCharacter("char-2", "Second")
		third := testutils.CreateTestCharacter("char-3", "Third")

		require.NoError(t, repo.Put(ctx, first))
		require.NoError(t, repo.Put(ctx, second))
		require.NoError(t, repo.Put(ctx, third))

		first.Name = "First, renamed"
		require.NoError(t, repo.Put(ctx, first))

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"char-1", "char-2", "char-3"}, ids(all))
		assert.Equal(t, "First, renamed", all[0].Name)
	})

	t.Run("delete removes the record and tolerates unknown ids", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Put(ctx, testutils.CreateTestCharacter("char-1", "First")))
		require.NoError(t, repo.Put(ctx, testutils.CreateTestCharacter("char-2", "Second")))

		require.NoError(t, repo.Delete(ctx, "char-1"))
		require.NoError(t, repo.Delete(ctx, "does-not-exist"))

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"char-2"}, ids(all))
	})

	t.Run("current id set and clear", func(t *testing.T) {
		repo := newRepo(t)

		require.NoError(t, repo.SetCurrentID(ctx, "char-7"))
		current, err := repo.GetCurrentID(ctx)
		require.NoError(t, err)
		assert.Equal(t, "char-7", current)

		require.NoError(t, repo.SetCurrentID(ctx, ""))
		current, err = repo.GetCurrentID(ctx)
		require.NoError(t, err)
		assert.Equal(t, "", current)
	})

	t.Run("put rejects a character without id", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.Put(ctx, testutils.CreateTestCharacter("", "Nameless"))
		assert.Error(t, err)

		err = repo.Put(ctx, nil)
		assert.Error(t, err)
	})

	t.Run("find by name ignores case", func(t *testing.T) {
		repo := newRepo(t)
		finder, ok := repo.(characters.NameFinder)
		if !ok {
			t.Skip("repository does not index names")
		}

		require.NoError(t, repo.Put(ctx, testutils.CreateTestCharacter("char-1", "Ragara Go")))
		require.NoError(t, repo.Put(ctx, testutils.CreateTestCharacter("char-2", "Someone Else")))

		found, err := finder.FindByName(ctx, "ragara go")
		require.NoError(t, err)
		assert.Equal(t, []string{"char-1"}, ids(found))
	})
}

func ids(chars []*character.Character) []string {
	result := make([]string, 0, len(chars))
	for _, c := range chars {
		result = append(result, c.ID)
	}
	return result
}
