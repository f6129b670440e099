package worker

import (
	"context"
	"log"
	"time"

	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
)

// SessionCleanupWorker purges expired admin sessions so the sessions table
// does not accumulate dead rows. Validation already rejects expired tokens;
// this is hygiene, not security.
type SessionCleanupWorker struct {
	sessions     entity.SessionRepository
	tickInterval time.Duration
}

func NewSessionCleanupWorker(sessions entity.SessionRepository) *SessionCleanupWorker {
	return &SessionCleanupWorker{
		sessions:     sessions,
		tickInterval: 15 * time.Minute,
	}
}

func (w *SessionCleanupWorker) Start(ctx context.Context) {
	log.Println("🕒 Session cleanup worker started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.purge(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Session cleanup worker stopped")
			return
		case <-ticker.C:
			w.purge(ctx)
		}
	}
}

func (w *SessionCleanupWorker) purge(ctx context.Context) {
	n, err := w.sessions.DeleteExpired(ctx)
	if err != nil {
		log.Printf("⚠️ purge expired sessions: %v", err)
		return
	}
	if n > 0 {
		log.Printf("🧹 purged %d expired sessions", n)
	}
}
