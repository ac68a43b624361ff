package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotekeeper/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// quoteCounter reports the size of the loaded collection.
type quoteCounter interface {
	Len() int
}

type HealthController struct {
	db      *database.Database
	quotes  quoteCounter
	version string
}

// NewHealthController creates a health controller. Both db and quotes may be nil.
func NewHealthController(db *database.Database, quotes quoteCounter, version string) *HealthController {
	return &HealthController{
		db:      db,
		quotes:  quotes,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	if h.quotes != nil {
		checks["quotes"] = strconv.Itoa(h.quotes.Len()) + " loaded"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
