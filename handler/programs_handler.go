package handler

import (
	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func CreateProgramHandler(c *gin.Context, svc *usecase.ProgramsService) {
	var req dto.CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	input, err := req.ToInput()
	if err != nil {
		respondError(c, err)
		return
	}

	program, err := svc.CreateProgram(c.Request.Context(), userID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, dto.NewProgramResponse(program))
}

func ListProgramsHandler(c *gin.Context, svc *usecase.ProgramsService) {
	programs, err := svc.ListPrograms(c.Request.Context(), userID(c), c.Query("status"), c.Query("priority"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"programs": dto.NewProgramListResponse(programs),
		"count":    len(programs),
	})
}

func GetProgramHandler(c *gin.Context, svc *usecase.ProgramsService) {
	program, err := svc.GetProgram(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.NewProgramResponse(program))
}

func UpdateProgramHandler(c *gin.Context, svc *usecase.ProgramsService) {
	var req dto.UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	input, err := req.ToInput()
	if err != nil {
		respondError(c, err)
		return
	}

	program, err := svc.UpdateProgram(c.Request.Context(), userID(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.NewProgramResponse(program))
}

func DeleteProgramHandler(c *gin.Context, svc *usecase.ProgramsService) {
	if err := svc.DeleteProgram(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Program deleted"})
}
