package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shelflife"
	"shelflife/internal/service"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errEvaluate        = "failed to evaluate stability study"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Request DTO for submitting a stability study.
type evaluationRequest struct {
	Attribute string                       `json:"attribute" binding:"required"`
	Series    shelflife.StabilitySeries    `json:"series" binding:"required"`
	Limit     shelflife.SpecificationLimit `json:"limit" binding:"required"`
	Flags     shelflife.ConditionFlags     `json:"flags"`
}

// EvaluationRequest is an exported model for Swagger docs of the submission payload.
type EvaluationRequest struct {
	// Quality attribute under evaluation
	Attribute string `json:"attribute" example:"Assay"`
	// Measurements as {time_months, value} pairs, any order
	Series []shelflife.StabilityPoint `json:"series"`
	// Registered acceptance limit with its failure direction
	Limit shelflife.SpecificationLimit `json:"limit"`
	// Study-condition flags driving the extrapolation decision
	Flags shelflife.ConditionFlags `json:"flags"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Evaluate a stability study
// @Description  Fits the long-term trend, estimates the specification crossing and applies the extrapolation decision. The resulting report is persisted and returned.
// @Tags         evaluations
// @Accept       json
// @Produce      json
// @Param        body  body   EvaluationRequest  true  "Stability study payload"
// @Success      200   {object}  shelflife.ShelfLifeReport
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/evaluations [post]
// @Security     BearerAuth
func (h *Handler) createEvaluation(c *gin.Context) {
	var req evaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	in := service.EvaluationInput{
		Attribute: req.Attribute,
		Series:    req.Series,
		Limit:     req.Limit,
		Flags:     req.Flags,
	}
	report, err := h.services.Evaluator.Evaluate(ctx, in)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			if h.log != nil {
				h.log.Infow("evaluation_rejected", "attribute", req.Attribute, "err", err)
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errEvaluate, "evaluation_failed", err, "attribute", req.Attribute)
		return
	}
	c.JSON(http.StatusOK, report)
}
