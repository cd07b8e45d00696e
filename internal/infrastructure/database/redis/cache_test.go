package redis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/VisaPath-Intelligence/pkg/errors"
)

type CacheTestSuite struct {
	suite.Suite
	client *Client
	mock   redismock.ClientMock
	cache  Cache
}

func (s *CacheTestSuite) SetupTest() {
	db, mock := redismock.NewClientMock()
	s.mock = mock
	s.client = &Client{
		rdb:    db,
		config: &RedisConfig{},
		logger: logging.NewNopLogger(),
	}
	s.cache = NewRedisCache(s.client, logging.NewNopLogger(), WithPrefix("test:"))
}

func (s *CacheTestSuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

type cachedRequirement struct {
	VisaType string `json:"visa_type"`
	MaxDays  int    `json:"max_days"`
}

func (s *CacheTestSuite) TestGetHit() {
	val := cachedRequirement{VisaType: "EMBASSY", MaxDays: 15}
	payload, _ := json.Marshal(val)

	s.mock.ExpectGet("test:visa:req:CN:DE:TOURISM").SetVal(string(payload))

	var dest cachedRequirement
	err := s.cache.Get(context.Background(), "visa:req:CN:DE:TOURISM", &dest)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), val, dest)
}

func (s *CacheTestSuite) TestGetMiss() {
	s.mock.ExpectGet("test:visa:req:CN:DE:TOURISM").RedisNil()

	var dest cachedRequirement
	err := s.cache.Get(context.Background(), "visa:req:CN:DE:TOURISM", &dest)

	assert.Equal(s.T(), ErrCacheMiss, err)
	assert.True(s.T(), pkgerrors.IsNotFound(err))
}

func (s *CacheTestSuite) TestGetConnectionError() {
	s.mock.ExpectGet("test:k1").SetErr(assert.AnError)

	var dest cachedRequirement
	err := s.cache.Get(context.Background(), "k1", &dest)

	assert.True(s.T(), pkgerrors.IsCode(err, pkgerrors.ErrCodeCacheError))
}

func (s *CacheTestSuite) TestSetUnserializableValue() {
	// No redis expectation: the marshal failure must short-circuit before any
	// network call.
	err := s.cache.Set(context.Background(), "k1", func() {}, 0)
	assert.Equal(s.T(), ErrSerializationFailed, err)
}

func (s *CacheTestSuite) TestDelete() {
	s.mock.ExpectDel("test:k1", "test:k2").SetVal(2)

	assert.NoError(s.T(), s.cache.Delete(context.Background(), "k1", "k2"))
}

func (s *CacheTestSuite) TestDeleteNothing() {
	// No keys, no round trip.
	assert.NoError(s.T(), s.cache.Delete(context.Background()))
}

func (s *CacheTestSuite) TestExists() {
	s.mock.ExpectExists("test:k1").SetVal(1)

	exists, err := s.cache.Exists(context.Background(), "k1")
	assert.NoError(s.T(), err)
	assert.True(s.T(), exists)
}

func (s *CacheTestSuite) TestPing() {
	s.mock.ExpectPing().SetVal("PONG")

	assert.NoError(s.T(), s.cache.Ping(context.Background()))
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func TestClosedClientRefusesCommands(t *testing.T) {
	db, _ := redismock.NewClientMock()
	client := &Client{rdb: db, config: &RedisConfig{}, logger: logging.NewNopLogger()}

	assert.NoError(t, client.Close())
	assert.NoError(t, client.Close(), "closing twice is harmless")

	assert.Equal(t, ErrClientClosed, client.Get(context.Background(), "k").Err())
	assert.Equal(t, ErrClientClosed, client.Set(context.Background(), "k", "v", 0).Err())
	assert.Equal(t, ErrClientClosed, client.Ping(context.Background()))
}

//Personal.AI order the ending
