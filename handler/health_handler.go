package handler

import (
	"context"
	"time"

	"main/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthHandler reports process health plus a live database ping. Redis is
// optional infrastructure and deliberately not part of the check.
func HealthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	if err := utils.MongoClient.Ping(ctx, readpref.Primary()); err != nil {
		dbStatus = "down"
	}

	payload := gin.H{
		"status":       "ok",
		"database":     dbStatus,
		"cpu_usage":    utils.GetCPUUsage(),
		"memory_usage": utils.GetMemoryUsage(),
		"timestamp":    time.Now().UTC(),
	}

	if dbStatus != "up" {
		payload["status"] = "degraded"
	}
	utils.Success(c, payload)
}
