package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/launchpool/launchpool/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// HistoryStream is the Redis stream carrying match history entries to
// the persistence workers.
const HistoryStream = "match:history"

// HistoryRecorder hands a history entry off for persistence. Recording
// is best-effort telemetry: implementations must never block or fail
// the scoring path, only log.
type HistoryRecorder interface {
	Record(ctx context.Context, h *models.MatchHistory)
}

type streamRecorder struct {
	rdb    *redis.Client
	stream string
	log    *logrus.Logger
}

func NewStreamRecorder(rdb *redis.Client, log *logrus.Logger) HistoryRecorder {
	if log == nil {
		log = logrus.New()
	}
	return &streamRecorder{rdb: rdb, stream: HistoryStream, log: log}
}

// Record publishes the entry to the history stream from a detached
// goroutine, so a slow or unavailable Redis cannot stall the caller.
func (r *streamRecorder) Record(_ context.Context, h *models.MatchHistory) {
	if h == nil {
		return
	}

	payload, err := json.Marshal(h)
	if err != nil {
		r.log.WithError(err).WithField("user_id", h.UserID).Error("history entry marshal failed")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := r.rdb.XAdd(ctx, &redis.XAddArgs{
			Stream: r.stream,
			Values: map[string]any{"payload": string(payload)},
		}).Err()
		if err != nil {
			r.log.WithError(err).WithFields(logrus.Fields{
				"user_id":    h.UserID,
				"project_id": h.ProjectID,
			}).Error("history record failed")
		}
	}()
}
