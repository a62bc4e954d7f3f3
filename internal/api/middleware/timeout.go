package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// aiPathPrefixes are endpoints that call the completion provider and need
// a longer budget than plain reads
var aiPathPrefixes = []string{
	"/api/v1/resumes",
	"/api/v1/jobs",
	"/api/v1/improvements",
	"/api/v1/bulk-analysis",
	"/api/v1/comparison",
}

// SelectiveTimeoutConfig applies the default timeout to most endpoints and
// the extended timeout to AI-backed endpoints
func SelectiveTimeoutConfig(defaultTimeout, aiTimeout time.Duration) echo.MiddlewareFunc {
	standard := middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: defaultTimeout})
	extended := middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: aiTimeout})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		standardNext := standard(next)
		extendedNext := extended(next)

		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, prefix := range aiPathPrefixes {
				if strings.HasPrefix(path, prefix) {
					return extendedNext(c)
				}
			}
			return standardNext(c)
		}
	}
}
