package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fadedpez/gamesvc/pkg/services/blackjack"
	"github.com/fadedpez/gamesvc/pkg/services/rps"
)

func (s *Server) handleActiveSessions(c *gin.Context) {
	count, err := s.blackjack.ActiveSessions(c.Request.Context())
	if err != nil {
		s.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code":     http.StatusOK,
		"active_sessions": count,
	})
}

func (s *Server) handleInfo(c *gin.Context) {
	playerID, ok := s.playerID(c)
	if !ok {
		return
	}

	view, err := s.blackjack.Info(c.Request.Context(), playerID)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}

	respondSession(c, view)
}

func (s *Server) handleCreate(c *gin.Context) {
	playerID, ok := s.playerID(c)
	if !ok {
		return
	}

	bet, err := strconv.ParseInt(c.Param("bet"), 10, 64)
	if err != nil || bet < 0 {
		respondError(c, http.StatusBadRequest, "bet must be a non-negative integer")
		return
	}

	view, err := s.blackjack.Create(c.Request.Context(), playerID, bet)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}

	respondSession(c, view)
}

func (s *Server) handleHit(c *gin.Context) {
	playerID, ok := s.playerID(c)
	if !ok {
		return
	}

	view, err := s.blackjack.Hit(c.Request.Context(), playerID)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}

	respondSession(c, view)
}

func (s *Server) handleStay(c *gin.Context) {
	playerID, ok := s.playerID(c)
	if !ok {
		return
	}

	view, err := s.blackjack.Stay(c.Request.Context(), playerID)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}

	respondSession(c, view)
}

func (s *Server) handleClaim(c *gin.Context) {
	playerID, ok := s.playerID(c)
	if !ok {
		return
	}

	view, err := s.blackjack.Claim(c.Request.Context(), playerID)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}

	respondSession(c, view)
}

func (s *Server) handleRPS(c *gin.Context) {
	move, err := rps.ParseMove(c.Param("move"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "move must be rock, paper or scissors")
		return
	}

	result := s.rps.Play(move)

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"result":      result,
	})
}

func (s *Server) playerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("player"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "player id must be an integer")
		return 0, false
	}
	return id, true
}

func (s *Server) respondServiceError(c *gin.Context, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Blackjack request failed: %v", err)
	}
	respondError(c, status, err.Error())
}

func respondSession(c *gin.Context, view *blackjack.View) {
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"session":     view,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"status_code": status,
		"message":     message,
	})
}

// statusForError maps the blackjack error taxonomy onto HTTP statuses.
// A zero-record restore means the session does not exist; any other
// count is a storage invariant violation.
func statusForError(err error) int {
	var countErr *blackjack.InvalidResultCountError
	if errors.As(err, &countErr) {
		if countErr.Count == 0 {
			return http.StatusNotFound
		}
		return http.StatusInternalServerError
	}

	switch {
	case errors.Is(err, blackjack.ErrSessionExists):
		return http.StatusConflict
	case errors.Is(err, blackjack.ErrGameOver):
		return http.StatusGone
	case errors.Is(err, blackjack.ErrGameInProgress),
		errors.Is(err, blackjack.ErrPlayerAlreadyPressedStay),
		errors.Is(err, blackjack.ErrDealerAlreadyPressedStay),
		errors.Is(err, blackjack.ErrPlayerAlreadyWon),
		errors.Is(err, blackjack.ErrPlayerAlreadyLost),
		errors.Is(err, blackjack.ErrDealerAlreadyWon),
		errors.Is(err, blackjack.ErrDealerAlreadyLost),
		errors.Is(err, blackjack.ErrPlayerNotDoneYet):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
