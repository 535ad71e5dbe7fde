package jobs

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/courtflow/intake-server-go/internal/storage"
)

// CleanupJob periodically sweeps attachment storage for orphaned files.
// Orphans appear when a chat's session expires in Redis mid-conversation:
// the downloaded attachments it referenced are never submitted or cleaned
// up by the state machine.
type CleanupJob struct {
	dir      *storage.Dir
	maxAge   time.Duration
	interval time.Duration
	done     chan struct{}
}

func NewCleanupJob(dir *storage.Dir, maxAge, interval time.Duration) *CleanupJob {
	return &CleanupJob{
		dir:      dir,
		maxAge:   maxAge,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (j *CleanupJob) Start() {
	go j.run()
	log.Info().Dur("interval", j.interval).Msg("attachment cleanup job started")
}

func (j *CleanupJob) Stop() {
	close(j.done)
	log.Info().Msg("attachment cleanup job stopped")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.sweep()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.sweep()
		}
	}
}

func (j *CleanupJob) sweep() {
	removed, err := j.dir.Sweep(j.maxAge)
	if err != nil {
		log.Error().Err(err).Msg("failed to sweep attachment storage")
	} else if removed > 0 {
		log.Info().Int("count", removed).Msg("swept orphaned attachments")
	}
}
