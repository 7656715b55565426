package handler

import (
	"errors"
	"log"

	"main/model"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses. Sentinel wrapping
// keeps the mapping in one place; anything unrecognized is a 500 and gets
// logged rather than leaked.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, model.ErrProgramNotFound),
		errors.Is(err, model.ErrCourseNotFound),
		errors.Is(err, model.ErrItemNotFound),
		errors.Is(err, model.ErrEntryNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, model.ErrDuplicateProgram),
		errors.Is(err, model.ErrChecklistConflict):
		utils.Conflict(c, err.Error())
	default:
		log.Printf("internal error: %v", err)
		utils.TrackError("internal", "unhandled")
		utils.InternalError(c, "Internal server error")
	}
}

// userID reads the id the auth middleware stored on the context.
func userID(c *gin.Context) string {
	return c.GetString("user_id")
}
