package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
)

// SyncController exposes the quote sync over HTTP.
type SyncController struct {
	runner SyncRunner
	status SyncStatusReader
	queue  TaskQueue
}

// NewSyncController creates a SyncController. With a nil queue, sync
// requests run synchronously.
func NewSyncController(runner SyncRunner, status SyncStatusReader, queue TaskQueue) *SyncController {
	return &SyncController{
		runner: runner,
		status: status,
		queue:  queue,
	}
}

// SyncStatusResponse combines the last recorded outcome with scheduler state.
type SyncStatusResponse struct {
	LastSyncAt       *time.Time `json:"last_sync_at,omitempty"`
	Status           string     `json:"status,omitempty"`
	Message          string     `json:"message,omitempty"`
	Merged           int        `json:"merged"`
	SchedulerRunning bool       `json:"scheduler_running"`
	Syncing          bool       `json:"syncing"`
	NextRunAt        *time.Time `json:"next_run_at,omitempty"`
}

// Trigger handles POST /api/sync
// Enqueues a sync task when a queue is available, otherwise syncs inline.
func (sc *SyncController) Trigger(c *gin.Context) {
	if sc.queue != nil {
		id, err := sc.queue.EnqueueSync("api")
		if err != nil {
			respondInternalError(c, err, "enqueue quote sync")
			return
		}
		respondAccepted(c, "sync queued", gin.H{"task_id": id})
		return
	}

	if sc.runner == nil {
		respondError(c, http.StatusServiceUnavailable, "quote sync not configured", "")
		return
	}

	report, err := sc.runner.SyncNow(c.Request.Context())
	if err != nil {
		respondQuoteError(c, err, "sync quotes")
		return
	}
	c.JSON(http.StatusOK, report)
}

// Status handles GET /api/sync/status
func (sc *SyncController) Status(c *gin.Context) {
	var response SyncStatusResponse

	if sc.status != nil {
		last := sc.status.GetQuoteSyncStatus()
		response.LastSyncAt = last.LastSyncAt
		response.Status = last.Status
		response.Message = last.Message
		response.Merged = last.Merged
	}

	if sc.runner != nil {
		response.SchedulerRunning = sc.runner.IsRunning()
		response.Syncing = sc.runner.IsSyncing()
		response.NextRunAt = sc.runner.GetNextRunTime()
	}

	c.JSON(http.StatusOK, response)
}

// TaskStatus handles GET /api/sync/tasks/:id
func (sc *SyncController) TaskStatus(c *gin.Context) {
	if sc.queue == nil {
		respondNotFound(c, "task queue")
		return
	}

	taskID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := sc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
