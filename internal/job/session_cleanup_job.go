package job

import (
	"context"

	"github.com/studybuddy/backend/internal/session"
)

// SessionCleanupJob sweeps idle sessions so abandoned uploads and chat
// histories do not accumulate in memory.
type SessionCleanupJob struct {
	store *session.Store
}

func NewSessionCleanupJob(store *session.Store) *SessionCleanupJob {
	return &SessionCleanupJob{store: store}
}

func (j *SessionCleanupJob) Name() string {
	return "session_cleanup"
}

func (j *SessionCleanupJob) Run(ctx context.Context) error {
	if j.store == nil {
		return nil
	}
	j.store.Sweep(ctx)
	return nil
}
