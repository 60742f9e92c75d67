package session

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite

	mr   *miniredis.Miniredis
	repo *RedisRepository
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	repo, err := NewRedisRepository(mr.Addr(), "", 0)
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.repo.Close()
	s.mr.Close()
}

func (s *RedisRepositoryTestSuite) TestGetMissingRecord() {
	record, err := s.repo.Get(context.Background(), 42)

	s.NoError(err)
	s.Nil(record)
}

func (s *RedisRepositoryTestSuite) TestUpsertAndGet() {
	bet := int64(50)
	record := &Record{
		PlayerID:   1,
		Bet:        &bet,
		Deck:       []string{"SPADES:ACE", "HEARTS:TEN"},
		PlayerHand: []string{"CLUBS:NINE", "DIAMONDS:KING"},
		DealerHand: []string{"HEARTS:TWO", "SPADES:SEVEN"},
		FirstTurn:  true,
	}

	s.NoError(s.repo.Upsert(context.Background(), record))

	got, err := s.repo.Get(context.Background(), 1)

	s.NoError(err)
	s.Require().NotNil(got)
	s.Equal(record, got)
}

func (s *RedisRepositoryTestSuite) TestUpsertReplacesRecord() {
	bet := int64(50)
	record := &Record{PlayerID: 1, Bet: &bet, FirstTurn: true}
	s.NoError(s.repo.Upsert(context.Background(), record))

	won := true
	record.Bet = nil
	record.Status = &won
	record.FirstTurn = false
	s.NoError(s.repo.Upsert(context.Background(), record))

	got, err := s.repo.Get(context.Background(), 1)

	s.NoError(err)
	s.Require().NotNil(got)
	s.Nil(got.Bet)
	s.Require().NotNil(got.Status)
	s.True(*got.Status)
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	bet := int64(25)
	s.NoError(s.repo.Upsert(context.Background(), &Record{PlayerID: 7, Bet: &bet}))

	s.NoError(s.repo.Delete(context.Background(), 7))

	got, err := s.repo.Get(context.Background(), 7)
	s.NoError(err)
	s.Nil(got)
}

func (s *RedisRepositoryTestSuite) TestCountActive() {
	ctx := context.Background()
	bet := int64(10)
	won := true

	// Two in-progress sessions and one finished
	s.NoError(s.repo.Upsert(ctx, &Record{PlayerID: 1, Bet: &bet}))
	s.NoError(s.repo.Upsert(ctx, &Record{PlayerID: 2, Bet: &bet}))
	s.NoError(s.repo.Upsert(ctx, &Record{PlayerID: 3, Status: &won}))

	count, err := s.repo.CountActive(ctx)

	s.NoError(err)
	s.Equal(int64(2), count)

	// Finishing a session drops it from the active count
	s.NoError(s.repo.Upsert(ctx, &Record{PlayerID: 2, Status: &won}))

	count, err = s.repo.CountActive(ctx)
	s.NoError(err)
	s.Equal(int64(1), count)
}
