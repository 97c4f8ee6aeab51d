package characters

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	sheeterr "github.com/KirkDiggler/essence-sheet/internal/errors"
	"github.com/KirkDiggler/essence-sheet/internal/testutils"
)

type RedisRepoTestSuite struct {
	suite.Suite
	mockClient *redis.Client
	mock       redismock.ClientMock
	repo       *redisRepo
	now        time.Time
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.mockClient, s.mock = redismock.NewClientMock()
	s.now = time.Date(2024, time.March, 14, 9, 30, 0, 0, time.UTC)
	s.repo = NewRedisRepository(&RedisRepoConfig{
		Client: s.mockClient,
		Clock:  func() time.Time { return s.now },
	})
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) marshal(v any) string {
	data, err := json.Marshal(v)
	s.Require().NoError(err)
	return string(data)
}

func (s *RedisRepoTestSuite) TestPut_NewCharacter() {
	ctx := context.Background()
	char := testutils.CreateTestCharacter("char-1", "Ragara Go")

	s.mock.ExpectGet("character:char-1").RedisNil()
	s.mock.ExpectSet("character:char-1", s.marshal(char), 0).SetVal("OK")
	s.mock.ExpectZAddNX("characters", redis.Z{Score: float64(s.now.UnixNano()), Member: "char-1"}).SetVal(1)
	s.mock.ExpectSAdd("characters:name:ragara go", "char-1").SetVal(1)

	s.NoError(s.repo.Put(ctx, char))
}

func (s *RedisRepoTestSuite) TestPut_RenameMovesNameIndex() {
	ctx := context.Background()
	previous := testutils.CreateTestCharacter("char-1", "Old Name")
	char := testutils.CreateTestCharacter("char-1", "Ragara Go")

	s.mock.ExpectGet("character:char-1").SetVal(s.marshal(previous))
	s.mock.ExpectSet("character:char-1", s.marshal(char), 0).SetVal("OK")
	s.mock.ExpectZAddNX("characters", redis.Z{Score: float64(s.now.UnixNano()), Member: "char-1"}).SetVal(0)
	s.mock.ExpectSRem("characters:name:old name", "char-1").SetVal(1)
	s.mock.ExpectSAdd("characters:name:ragara go", "char-1").SetVal(1)

	s.NoError(s.repo.Put(ctx, char))
}

func (s *RedisRepoTestSuite) TestPut_StoreUnavailable() {
	ctx := context.Background()
	char := testutils.CreateTestCharacter("char-1", "Ragara Go")

	s.mock.ExpectGet("character:char-1").SetErr(errors.New("connection refused"))

	err := s.repo.Put(ctx, char)
	s.Require().Error(err)
	s.True(sheeterr.IsUnavailable(err))
}

func (s *RedisRepoTestSuite) TestPut_InvalidArguments() {
	ctx := context.Background()

	s.True(sheeterr.IsInvalidArgument(s.repo.Put(ctx, nil)))
	s.True(sheeterr.IsInvalidArgument(s.repo.Put(ctx, testutils.CreateTestCharacter("", "No ID"))))
}

func (s *RedisRepoTestSuite) TestGetAll() {
	ctx := context.Background()
	char := testutils.CreateTestCharacter("char-1", "Ragara Go")

	s.mock.ExpectZRange("characters", 0, -1).SetVal([]string{"char-1"})
	s.mock.ExpectGet("character:char-1").SetVal(s.marshal(char))

	all, err := s.repo.GetAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal(char, all[0])
}

func (s *RedisRepoTestSuite) TestGetAll_Empty() {
	ctx := context.Background()

	s.mock.ExpectZRange("characters", 0, -1).SetVal([]string{})

	all, err := s.repo.GetAll(ctx)
	s.Require().NoError(err)
	s.NotNil(all)
	s.Empty(all)
}

func (s *RedisRepoTestSuite) TestGetAll_SkipsDanglingIndexEntry() {
	ctx := context.Background()

	s.mock.ExpectZRange("characters", 0, -1).SetVal([]string{"gone"})
	s.mock.ExpectGet("character:gone").RedisNil()

	all, err := s.repo.GetAll(ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *RedisRepoTestSuite) TestGetAll_CorruptRecord() {
	ctx := context.Background()

	s.mock.ExpectZRange("characters", 0, -1).SetVal([]string{"char-1"})
	s.mock.ExpectGet("character:char-1").SetVal("{not json")

	_, err := s.repo.GetAll(ctx)
	s.Require().Error(err)
	s.True(sheeterr.IsDataCorruption(err))
}

func (s *RedisRepoTestSuite) TestGetAll_IndexUnavailable() {
	ctx := context.Background()

	s.mock.ExpectZRange("characters", 0, -1).SetErr(errors.New("connection refused"))

	_, err := s.repo.GetAll(ctx)
	s.Require().Error(err)
	s.True(sheeterr.IsUnavailable(err))
}

func (s *RedisRepoTestSuite) TestDelete() {
	ctx := context.Background()
	char := testutils.CreateTestCharacter("char-1", "Ragara Go")

	s.mock.ExpectGet("character:char-1").SetVal(s.marshal(char))
	s.mock.ExpectDel("character:char-1").SetVal(1)
	s.mock.ExpectZRem("characters", "char-1").SetVal(1)
	s.mock.ExpectSRem("characters:name:ragara go", "char-1").SetVal(1)

	s.NoError(s.repo.Delete(ctx, "char-1"))
}

func (s *RedisRepoTestSuite) TestDelete_Unknown() {
	ctx := context.Background()

	s.mock.ExpectGet("character:missing").RedisNil()
	s.mock.ExpectDel("character:missing").SetVal(0)
	s.mock.ExpectZRem("characters", "missing").SetVal(0)

	s.NoError(s.repo.Delete(ctx, "missing"))
}

func (s *RedisRepoTestSuite) TestFindByName() {
	ctx := context.Background()
	char := testutils.CreateTestCharacter("char-1", "Ragara Go")

	s.mock.ExpectSMembers("characters:name:ragara go").SetVal([]string{"char-1"})
	s.mock.ExpectGet("character:char-1").SetVal(s.marshal(char))

	found, err := s.repo.FindByName(ctx, "  RAGARA Go ")
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal("char-1", found[0].ID)
}

func (s *RedisRepoTestSuite) TestCurrentID() {
	ctx := context.Background()

	s.mock.ExpectGet("metadata:currentCharacterId").RedisNil()
	id, err := s.repo.GetCurrentID(ctx)
	s.NoError(err)
	s.Equal("", id)

	s.mock.ExpectSet("metadata:currentCharacterId", "char-1", 0).SetVal("OK")
	s.NoError(s.repo.SetCurrentID(ctx, "char-1"))

	s.mock.ExpectGet("metadata:currentCharacterId").SetVal("char-1")
	id, err = s.repo.GetCurrentID(ctx)
	s.NoError(err)
	s.Equal("char-1", id)

	s.mock.ExpectDel("metadata:currentCharacterId").SetVal(1)
	s.NoError(s.repo.SetCurrentID(ctx, ""))
}

func (s *RedisRepoTestSuite) TestCurrentID_Unavailable() {
	ctx := context.Background()

	s.mock.ExpectSet("metadata:currentCharacterId", "char-1", 0).SetErr(errors.New("connection refused"))

	err := s.repo.SetCurrentID(ctx, "char-1")
	s.Require().Error(err)
	s.True(sheeterr.IsUnavailable(err))
}
