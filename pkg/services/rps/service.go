package rps

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Move represents a rock-paper-scissors move
type Move string

const (
	Rock     Move = "ROCK"
	Paper    Move = "PAPER"
	Scissors Move = "SCISSORS"
)

// Outcome represents the player's result against the bot
type Outcome string

const (
	Win  Outcome = "WIN"
	Lose Outcome = "LOSE"
	Draw Outcome = "DRAW"
)

var ErrUnknownMove = errors.New("unknown move")

var moves = []Move{Rock, Paper, Scissors}

// beats maps each move to the move it defeats
var beats = map[Move]Move{
	Rock:     Scissors,
	Paper:    Rock,
	Scissors: Paper,
}

// ParseMove parses a move name, case-insensitively
func ParseMove(s string) (Move, error) {
	move := Move(strings.ToUpper(s))
	if _, ok := beats[move]; !ok {
		return "", ErrUnknownMove
	}
	return move, nil
}

// Result is the outcome of one round
type Result struct {
	PlayerMove Move    `json:"player_move"`
	BotMove    Move    `json:"bot_move"`
	Outcome    Outcome `json:"outcome"`
}

// Service plays stateless rounds against a randomly-moving bot. Rounds
// are never persisted.
type Service struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewService creates a new service. A nil generator falls back to a
// time-seeded one.
func NewService(r *rand.Rand) *Service {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: r}
}

// Play runs one round against the bot
func (s *Service) Play(move Move) *Result {
	s.mu.Lock()
	bot := moves[s.rng.Intn(len(moves))]
	s.mu.Unlock()

	return &Result{
		PlayerMove: move,
		BotMove:    bot,
		Outcome:    decide(move, bot),
	}
}

func decide(player, bot Move) Outcome {
	switch {
	case player == bot:
		return Draw
	case beats[player] == bot:
		return Win
	default:
		return Lose
	}
}
