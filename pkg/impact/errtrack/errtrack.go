// Package errtrack reports unexpected server errors to an external tracker.
package errtrack

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rollbar/rollbar-go"
)

// Reporter receives unexpected errors together with request context.
type Reporter interface {
	Report(err error, extras map[string]interface{})
	Close()
}

// Noop drops every report.
type Noop struct{}

func (Noop) Report(error, map[string]interface{}) {}
func (Noop) Close()                               {}

// RollbarReporter sends errors to Rollbar.
type RollbarReporter struct{}

// NewRollbar configures the global rollbar client.
func NewRollbar(token, environment, codeVersion string) *RollbarReporter {
	rollbar.SetToken(token)
	rollbar.SetEnvironment(environment)
	rollbar.SetCodeVersion(codeVersion)
	rollbar.SetServerRoot("github.com/ama-impact/ama-impact")
	return &RollbarReporter{}
}

func (r *RollbarReporter) Report(err error, extras map[string]interface{}) {
	if extras == nil {
		rollbar.Error(err)
		return
	}
	rollbar.Error(err, extras)
}

// Close flushes queued reports.
func (r *RollbarReporter) Close() {
	rollbar.Wait()
}

var (
	mu      sync.RWMutex
	current Reporter = Noop{}
)

// SetReporter installs the process-wide reporter.
func SetReporter(r Reporter) {
	mu.Lock()
	defer mu.Unlock()
	if r == nil {
		r = Noop{}
	}
	current = r
}

// Get returns the process-wide reporter.
func Get() Reporter {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Recovery converts panics into 500 responses and reports them.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		err, ok := recovered.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", recovered)
		}
		logger.Error("panic recovered", "error", err, "path", c.Request.URL.Path)
		Get().Report(err, map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		})
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
			"code":  "INTERNAL_ERROR",
		})
	})
}
