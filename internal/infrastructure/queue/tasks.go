package queue

// Task types routed through asynq.
const (
	TypeReviewSync = "review:sync"
)

// Queue names with their server weights configured in cmd/worker.
const (
	QueueDefault = "default"
	QueueSync    = "sync"
)

// ReviewSyncPayload is the (currently empty) payload of a review:sync task.
// Kept as a struct so per-source sync options have a place to land.
type ReviewSyncPayload struct{}
