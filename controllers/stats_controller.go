package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirp/chirp/store"
	"github.com/chirp/chirp/utils"
)

// StatsController provides site-wide counts.
type StatsController struct {
	store *store.Store
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(st *store.Store) *StatsController {
	return &StatsController{store: st}
}

// GetStats returns the number of users, posts and likes.
func (s *StatsController) GetStats(ctx *gin.Context) {
	stats, err := s.store.Stats(ctx.Request.Context())
	if err != nil {
		utils.Sugar.Errorw("load stats failed", "error", err)
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to load stats")
		return
	}
	utils.Success(ctx, stats)
}
