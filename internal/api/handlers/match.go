package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"resumatch/internal/logging"
	"resumatch/internal/matcher"
	"resumatch/pkg/models"
)

// ImprovementsHandler runs one match and improvement analysis for a
// resume/job pair and appends the result to the match history
func ImprovementsHandler(svc *matcher.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)
		logger := logging.LogWithRequestID(reqID)

		var req models.ImprovementRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, reqID, "Invalid request format")
		}
		if err := validate.Struct(&req); err != nil {
			return badRequest(c, reqID, err.Error())
		}

		logger.Info("Improvement request received", map[string]interface{}{
			"resume_id": req.ResumeID,
			"job_id":    req.JobID,
		})

		result, err := svc.GenerateImprovements(c.Request().Context(), req.ResumeID, req.JobID)
		if err != nil {
			return writeError(c, reqID, err)
		}

		return c.JSON(http.StatusOK, result)
	}
}

// MatchHistoryHandler returns the full match history of a resume in
// insertion order
func MatchHistoryHandler(svc *matcher.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)

		resumeID := c.Param("resume_id")
		if resumeID == "" {
			return badRequest(c, reqID, "resume id is required")
		}

		history, err := svc.MatchHistory(c.Request().Context(), resumeID)
		if err != nil {
			return writeError(c, reqID, err)
		}

		return c.JSON(http.StatusOK, models.MatchHistoryResponse{
			ResumeID:  resumeID,
			Matches:   history,
			Total:     len(history),
			RequestID: reqID,
		})
	}
}
