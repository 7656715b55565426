package handler

import (
	"strconv"
	"strings"

	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// SearchCatalogHandler runs a text search over the course catalog. Used by
// the add-program flow to pick a course before tracking it.
func SearchCatalogHandler(c *gin.Context, repo *repository.CatalogRepo) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		utils.BadRequest(c, "q is required")
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			utils.BadRequest(c, "limit must be between 1 and 50")
			return
		}
		limit = parsed
	}

	courses, err := repo.SearchCourses(c.Request.Context(), query, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"courses": courses,
		"count":   len(courses),
	})
}

func GetCourseHandler(c *gin.Context, repo *repository.CatalogRepo) {
	course, err := repo.FindCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if course == nil {
		utils.NotFound(c, "Course not found")
		return
	}

	utils.Success(c, course)
}
