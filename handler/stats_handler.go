package handler

import (
	"strconv"

	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService *usecase.StatsService
}

func NewStatsHandler(statsService *usecase.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func daysParam(c *gin.Context, fallback int) (int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return fallback, true
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		utils.BadRequest(c, "days must be an integer")
		return 0, false
	}
	return parsed, true
}

func (h *StatsHandler) GetStats(c *gin.Context) {
	days, ok := daysParam(c, usecase.StatsDeadlineWindowDays)
	if !ok {
		return
	}

	stats, err := h.statsService.GetStats(c.Request.Context(), userID(c), days)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, stats)
}

func (h *StatsHandler) GetDeadlines(c *gin.Context) {
	days, ok := daysParam(c, usecase.DefaultDeadlineWindowDays)
	if !ok {
		return
	}

	entries, err := h.statsService.GetDeadlines(c.Request.Context(), userID(c), days)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"deadlines": entries,
		"count":     len(entries),
	})
}
