package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"resumatch/internal/logging"
	"resumatch/internal/matcher"
	"resumatch/pkg/models"
)

var validate = validator.New()

// CreateResumeHandler registers a resume from raw document text and runs
// the full extraction and self-analysis
func CreateResumeHandler(svc *matcher.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		reqID := requestID(c)
		logger := logging.LogWithRequestID(reqID)

		var req models.ExtractResumeRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, reqID, "Invalid request format")
		}
		if err := validate.Struct(&req); err != nil {
			return badRequest(c, reqID, err.Error())
		}

		logger.Info("Resume extraction request received", map[string]interface{}{
			"text_length": len(req.Text),
		})

		resume, err := svc.ProcessResume(c.Request().Context(), req.Text)
		if err != nil {
			return writeError(c, reqID, err)
		}

		return c.JSON(http.StatusCreated, models.ExtractResumeResponse{
			ResumeID:         resume.ResumeID,
			Resume:           resume,
			AnalysisScores:   resume.AnalysisScores,
			Feedback:         resume.Feedback,
			ProcessingTimeMs: time.Since(startTime).Milliseconds(),
			RequestID:        reqID,
		})
	}
}

// GetResumeHandler returns a processed resume by id
func GetResumeHandler(svc *matcher.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)

		resumeID := c.Param("id")
		if resumeID == "" {
			return badRequest(c, reqID, "resume id is required")
		}

		resume, err := svc.GetResumeRecord(c.Request().Context(), resumeID)
		if err != nil {
			return writeError(c, reqID, err)
		}

		return c.JSON(http.StatusOK, resume)
	}
}
