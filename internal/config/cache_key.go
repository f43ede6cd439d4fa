package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key holding a user's active session JTI
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// NotifyChannel returns the Redis Pub/Sub channel for a notification room.
// A room is either "<role>-room" or a user's email.
func (r *CacheKeyStruct) NotifyChannel(room string) string {
	return fmt.Sprintf("notify:%s", room)
}

// NotifyPattern matches every notification channel, for PSUBSCRIBE.
func (r *CacheKeyStruct) NotifyPattern() string {
	return "notify:*"
}

// RoomFromChannel extracts the room name back out of a notification channel.
func (r *CacheKeyStruct) RoomFromChannel(channel string) string {
	return channel[len("notify:"):]
}

var CacheKey = NewCacheKeyStruct()
