package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"resumatch/internal/logging"
	"resumatch/internal/matcher"
)

// DashboardHandler returns the aggregated reporting view for one resume
func DashboardHandler(svc *matcher.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)

		resumeID := c.Param("resume_id")
		if resumeID == "" {
			return badRequest(c, reqID, "resume id is required")
		}

		dashboard, err := svc.GetDashboard(c.Request().Context(), resumeID)
		if err != nil {
			return writeError(c, reqID, err)
		}

		dashboard.RequestID = reqID
		return c.JSON(http.StatusOK, dashboard)
	}
}

// BulkAnalysisHandler matches one resume against a comma-separated list
// of job ids
func BulkAnalysisHandler(svc *matcher.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)
		logger := logging.LogWithRequestID(reqID)

		resumeID := c.Param("resume_id")
		if resumeID == "" {
			return badRequest(c, reqID, "resume id is required")
		}

		jobIDs := splitIDs(c.QueryParam("job_ids"))
		if len(jobIDs) == 0 {
			return badRequest(c, reqID, "at least one valid job_id is required")
		}

		logger.Info("Bulk analysis request received", map[string]interface{}{
			"resume_id": resumeID,
			"jobs":      len(jobIDs),
		})

		response, err := svc.BulkAnalyze(c.Request().Context(), resumeID, jobIDs)
		if err != nil {
			return writeError(c, reqID, err)
		}

		response.RequestID = reqID
		return c.JSON(http.StatusOK, response)
	}
}

// ComparisonHandler matches a comma-separated list of resume ids against
// one job and ranks them
func ComparisonHandler(svc *matcher.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)
		logger := logging.LogWithRequestID(reqID)

		resumeIDs := splitIDs(c.QueryParam("resume_ids"))
		if len(resumeIDs) == 0 {
			return badRequest(c, reqID, "at least one valid resume_id is required")
		}

		jobID := strings.TrimSpace(c.QueryParam("job_id"))
		if jobID == "" {
			return badRequest(c, reqID, "job_id is required")
		}

		logger.Info("Comparison request received", map[string]interface{}{
			"job_id":  jobID,
			"resumes": len(resumeIDs),
		})

		response, err := svc.Compare(c.Request().Context(), resumeIDs, jobID)
		if err != nil {
			return writeError(c, reqID, err)
		}

		response.RequestID = reqID
		return c.JSON(http.StatusOK, response)
	}
}

func splitIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
