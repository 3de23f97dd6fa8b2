package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// stateTTL expires abandoned conversations.
const stateTTL = 24 * time.Hour

// RedisManager manages user states using Redis, so conversation state
// survives process restarts.
type RedisManager struct {
	client *redis.Client
}

// NewRedisManager creates a new Redis-based state manager
func NewRedisManager(redisHost, redisPort string) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", redisHost, redisPort),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{client: client}, nil
}

// SetUserState sets the state for a user with TTL
func (m *RedisManager) SetUserState(userID int64, state string) {
	ctx := context.Background()
	key := fmt.Sprintf("user:%d:state", userID)
	m.client.Set(ctx, key, state, stateTTL)
}

// GetUserState gets the state for a user
func (m *RedisManager) GetUserState(userID int64) string {
	ctx := context.Background()
	key := fmt.Sprintf("user:%d:state", userID)
	result := m.client.Get(ctx, key)
	if result.Err() != nil {
		return None // missing key or Redis failure, fall back to idle
	}
	return result.Val()
}

// ClearUserState clears the state for a user
func (m *RedisManager) ClearUserState(userID int64) {
	ctx := context.Background()
	key := fmt.Sprintf("user:%d:state", userID)
	m.client.Del(ctx, key)
}

// SetTempData sets temporary data for a user
func (m *RedisManager) SetTempData(userID int64, key string, value string) {
	tempData := m.getTempDataMap(userID)
	if tempData == nil {
		tempData = make(map[string]string)
	}
	tempData[key] = value
	m.saveTempDataMap(userID, tempData)
}

// GetTempData gets temporary data for a user
func (m *RedisManager) GetTempData(userID int64, key string) (string, bool) {
	tempData := m.getTempDataMap(userID)
	if tempData == nil {
		return "", false
	}
	value, exists := tempData[key]
	return value, exists
}

// ClearTempData clears all temporary data for a user
func (m *RedisManager) ClearTempData(userID int64) {
	ctx := context.Background()
	key := fmt.Sprintf("user:%d:temp", userID)
	m.client.Del(ctx, key)
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}

func (m *RedisManager) getTempDataMap(userID int64) map[string]string {
	ctx := context.Background()
	key := fmt.Sprintf("user:%d:temp", userID)

	result := m.client.Get(ctx, key)
	if result.Err() != nil {
		return nil
	}

	var tempData map[string]string
	if err := json.Unmarshal([]byte(result.Val()), &tempData); err != nil {
		return nil
	}
	return tempData
}

func (m *RedisManager) saveTempDataMap(userID int64, tempData map[string]string) {
	ctx := context.Background()
	key := fmt.Sprintf("user:%d:temp", userID)

	data, err := json.Marshal(tempData)
	if err != nil {
		return
	}
	m.client.Set(ctx, key, data, stateTTL)
}
