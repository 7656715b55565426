package handler

import (
	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetNotesHandler(c *gin.Context, svc *usecase.NotesService) {
	notes, err := svc.GetNotes(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, notes)
}

func UpdateMainNotesHandler(c *gin.Context, svc *usecase.NotesService) {
	var req dto.UpdateMainNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	if err := svc.UpdateMainNotes(c.Request.Context(), userID(c), c.Param("id"), *req.Content); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Notes updated"})
}

func AddNoteEntryHandler(c *gin.Context, svc *usecase.NotesService) {
	var req dto.AddNoteEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := svc.AddEntry(c.Request.Context(), userID(c), c.Param("id"), req.Content, req.Category, req.Pinned)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, entry)
}

func UpdateNoteEntryHandler(c *gin.Context, svc *usecase.NotesService) {
	var req dto.UpdateNoteEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	entries, err := svc.UpdateEntry(c.Request.Context(), userID(c), c.Param("id"), c.Param("entryId"), usecase.UpdateEntryInput{
		Content:  req.Content,
		Category: req.Category,
		Pinned:   req.Pinned,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"entries": entries})
}

func DeleteNoteEntryHandler(c *gin.Context, svc *usecase.NotesService) {
	if err := svc.DeleteEntry(c.Request.Context(), userID(c), c.Param("id"), c.Param("entryId")); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Note entry deleted"})
}
