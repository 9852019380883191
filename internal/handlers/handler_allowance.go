package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/familienkasse/internal/core/ports/services"
	"github.com/SscSPs/familienkasse/internal/dto"
	"github.com/SscSPs/familienkasse/internal/middleware"
	"github.com/gin-gonic/gin"
)

type allowanceHandler struct {
	allowanceService portssvc.AllowanceSvc
}

func registerAllowanceRoutes(rg *gin.RouterGroup, allowanceService portssvc.AllowanceSvc) {
	h := &allowanceHandler{allowanceService: allowanceService}

	cron := rg.Group("/cron")
	{
		cron.POST("/weekly-allowance", h.runWeeklyAllowance)
	}
}

// runWeeklyAllowance godoc
// @Summary Run the weekly allowance job
// @Description Deposits the configured allowance into every eligible account that has not received one this week. An empty body runs for real.
// @Tags jobs
// @Accept  json
// @Produce  json
// @Param   request body dto.WeeklyAllowanceRequest false "Job options"
// @Success 200 {object} domain.AllowanceResult
// @Failure 400 {object} apperrors.AppError
// @Failure 401 {object} apperrors.AppError
// @Security BearerAuth
// @Router /cron/weekly-allowance [post]
func (h *allowanceHandler) runWeeklyAllowance(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var req dto.WeeklyAllowanceRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	result := h.allowanceService.ProcessWeeklyAllowances(c.Request.Context(), req.DryRun)
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Weekly allowance triggered via API",
		slog.Bool("dry_run", req.DryRun),
		slog.Bool("success", result.Success))
	c.JSON(http.StatusOK, result)
}
