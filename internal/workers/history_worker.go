package workers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/launchpool/launchpool/internal/models"
	mongorepo "github.com/launchpool/launchpool/internal/repositories/mongo"
	"github.com/launchpool/launchpool/internal/services"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// HistoryWorkerPool drains the match history stream into the
// append-only Mongo collection. The pipeline is best-effort: a message
// that cannot be persisted is logged and acked, never retried forever
// and never surfaced to the scoring path.
type HistoryWorkerPool struct {
	Redis      *redis.Client
	History    mongorepo.MatchHistoryRepository
	NumWorkers int

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
}

func (p *HistoryWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.History == nil {
		return errors.New("HistoryWorkerPool missing dependency: Redis/History must be set")
	}
	if p.Stream == "" {
		p.Stream = services.HistoryStream
	}
	if p.Group == "" {
		p.Group = "history-workers"
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "c"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 3
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		go p.runConsumer(ctx, consumer)
	}
	return nil
}

func (p *HistoryWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    20,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if err == redis.Nil {
				continue
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				p.handleMsg(ctx, msg)
				_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
			}
		}
	}
}

func (p *HistoryWorkerPool) handleMsg(ctx context.Context, msg redis.XMessage) {
	v, ok := msg.Values["payload"]
	if !ok || v == nil {
		return
	}
	raw, _ := v.(string)
	if raw == "" {
		return
	}

	var entry models.MatchHistory
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		p.Logger.WithError(err).WithField("redis_id", msg.ID).Warn("history payload decode failed")
		return
	}
	if entry.UserID == "" || entry.ProjectID == "" {
		return
	}

	log := p.Logger.WithFields(logrus.Fields{
		"redis_id":   msg.ID,
		"user_id":    entry.UserID,
		"project_id": entry.ProjectID,
		"action":     entry.Action,
	})

	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.History.Append(writeCtx, &entry); err != nil {
		log.WithError(err).Error("history append failed")
		return
	}
	log.Debug("history entry persisted")
}
