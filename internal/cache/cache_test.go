package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type standing struct {
	Team   string `json:"team"`
	Points int    `json:"points"`
}

type CacheSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	cache *Redis
	ctx   context.Context
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	s.cache = New(client, time.Minute)
	s.ctx = context.Background()
}

func (s *CacheSuite) TearDownTest() {
	if s.cache != nil {
		_ = s.cache.client.Close()
	}
}

func (s *CacheSuite) TestSetThenGet() {
	s.cache.Set(s.ctx, "standings:PL", []standing{{Team: "Arsenal", Points: 80}})

	var got []standing
	s.Require().True(s.cache.Get(s.ctx, "standings:PL", &got))
	s.Equal([]standing{{Team: "Arsenal", Points: 80}}, got)
	s.True(s.mini.Exists(keyPrefix + "standings:PL"))
}

func (s *CacheSuite) TestMiss() {
	var got []standing
	s.False(s.cache.Get(s.ctx, "standings:BL1", &got))
	s.Nil(got)
}

func (s *CacheSuite) TestEntriesExpire() {
	s.cache.Set(s.ctx, "rumors", map[string]int{"total": 3})
	s.mini.FastForward(time.Minute + time.Second)

	var got map[string]int
	s.False(s.cache.Get(s.ctx, "rumors", &got))
}

func (s *CacheSuite) TestUndecodableEntryIsAMiss() {
	s.Require().NoError(s.mini.Set(keyPrefix+"bad", "{not json"))

	var got standing
	s.False(s.cache.Get(s.ctx, "bad", &got))
}

func (s *CacheSuite) TestDelete() {
	s.cache.Set(s.ctx, "k", 1)
	s.cache.Delete(s.ctx, "k")
	s.False(s.mini.Exists(keyPrefix + "k"))
}

func (s *CacheSuite) TestRedisDown() {
	s.mini.Close()

	var got int
	s.False(s.cache.Get(s.ctx, "k", &got))
	s.cache.Set(s.ctx, "k", 1)
	s.Error(s.cache.Ping(s.ctx))
}

func (s *CacheSuite) TestNilCache() {
	var c *Redis
	var got int
	s.False(c.Get(s.ctx, "k", &got))
	c.Set(s.ctx, "k", 1)
	c.Delete(s.ctx, "k")
	s.NoError(c.Ping(s.ctx))
	s.Nil(New(nil, time.Minute))
}
