package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emrekrt/placementhub/internal/app/models"
	"github.com/emrekrt/placementhub/internal/app/models/dto"
	"github.com/emrekrt/placementhub/internal/middleware"
)

// requireActor returns the authenticated actor or writes a 401 and reports
// false. Routes behind JWTAuth always have one; this guards misconfiguration.
func requireActor(ctx *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return models.Actor{}, false
	}
	return actor, true
}

// parseIDParam parses a positive int64 path parameter or writes a 400
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	value, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || value <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return value, true
}

// parseIndexParam parses a non-negative int path parameter or writes a 400
func parseIndexParam(ctx *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(ctx.Param(name))
	if err != nil || value < 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return value, true
}
