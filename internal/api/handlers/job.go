package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"resumatch/internal/logging"
	"resumatch/internal/matcher"
	"resumatch/pkg/models"
)

// CreateJobsHandler registers a batch of job descriptions under a resume
func CreateJobsHandler(svc *matcher.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		reqID := requestID(c)
		logger := logging.LogWithRequestID(reqID)

		var req models.ExtractJobsRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, reqID, "Invalid request format")
		}
		if err := validate.Struct(&req); err != nil {
			return badRequest(c, reqID, err.Error())
		}

		logger.Info("Job extraction request received", map[string]interface{}{
			"resume_id": req.ResumeID,
			"jobs":      len(req.Jobs),
		})

		jobs, err := svc.ProcessJobs(c.Request().Context(), req.ResumeID, req.Jobs)
		if err != nil {
			return writeError(c, reqID, err)
		}

		processed := make([]models.ProcessedJobResult, 0, len(jobs))
		for _, job := range jobs {
			processed = append(processed, models.ProcessedJobResult{
				JobID:          job.JobID,
				Job:            job,
				AnalysisScores: job.AnalysisScores,
			})
		}

		return c.JSON(http.StatusCreated, models.ExtractJobsResponse{
			ResumeID:         req.ResumeID,
			ProcessedJobs:    processed,
			TotalProcessed:   len(processed),
			ProcessingTimeMs: time.Since(startTime).Milliseconds(),
			RequestID:        reqID,
		})
	}
}

// GetJobHandler returns a processed job by id
func GetJobHandler(svc *matcher.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)

		jobID := c.Param("id")
		if jobID == "" {
			return badRequest(c, reqID, "job id is required")
		}

		job, err := svc.GetJobRecord(c.Request().Context(), jobID)
		if err != nil {
			return writeError(c, reqID, err)
		}

		return c.JSON(http.StatusOK, job)
	}
}
