package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	channelPrefix = "lineup:events:"
	versionPrefix = "lineup:version:"

	// ChannelPattern подписывает на события всех магазинов.
	ChannelPattern = channelPrefix + "*"
)

// Channel возвращает канал pub/sub магазина.
func Channel(storeID uuid.UUID) string {
	return channelPrefix + storeID.String()
}

// StoreFromChannel извлекает идентификатор магазина из имени канала.
func StoreFromChannel(channel string) (uuid.UUID, bool) {
	rest, ok := strings.CutPrefix(channel, channelPrefix)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(rest)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// VersionKey возвращает ключ счётчика изменений сессии.
func VersionKey(sessionID uuid.UUID) string {
	return versionPrefix + sessionID.String()
}

// RedisPublisher публикует события в канал магазина и увеличивает счётчик версии сессии
// одной транзакцией MULTI/EXEC.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	_, err = p.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Publish(ctx, Channel(e.StoreID), string(data))
		pipe.Incr(ctx, VersionKey(e.SessionID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", e.EventType, err)
	}
	return nil
}

// Version возвращает счётчик изменений сессии; 0, если изменений ещё не было.
func (p *RedisPublisher) Version(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	v, err := p.client.Get(ctx, VersionKey(sessionID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get version: %w", err)
	}
	return v, nil
}
