package handler

import (
	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func checklistResponse(program *model.TrackedProgram) dto.ChecklistResponse {
	return dto.ChecklistResponse{
		Items:    program.DocumentChecklist,
		Version:  program.ChecklistVersion,
		Progress: usecase.ChecklistProgress(program.DocumentChecklist),
	}
}

func ReplaceChecklistHandler(c *gin.Context, svc *usecase.ChecklistService) {
	var req dto.ReplaceChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	program, err := svc.ReplaceChecklist(c.Request.Context(), userID(c), c.Param("id"), req.Items, req.Version())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, checklistResponse(program))
}

func AddChecklistItemHandler(c *gin.Context, svc *usecase.ChecklistService) {
	var req dto.AddChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	program, err := svc.AddItem(c.Request.Context(), userID(c), c.Param("id"), req.Name, req.Required, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, checklistResponse(program))
}

func RemoveChecklistItemHandler(c *gin.Context, svc *usecase.ChecklistService) {
	program, err := svc.RemoveItem(c.Request.Context(), userID(c), c.Param("id"), c.Param("itemId"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, checklistResponse(program))
}

func ToggleChecklistItemHandler(c *gin.Context, svc *usecase.ChecklistService) {
	program, err := svc.ToggleItem(c.Request.Context(), userID(c), c.Param("id"), c.Param("itemId"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, checklistResponse(program))
}
