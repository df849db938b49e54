// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dublab/studio/internal/platform/constants"
)

// RedisFormOptionsCache implements [FormOptionsCache] using Redis.
//
// The artist and category handlers share it as their invalidator, so every
// catalogue mutation drops the cached lists.
type RedisFormOptionsCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewFormOptionsCache creates a Redis-backed cache whose entries expire after ttl.
func NewFormOptionsCache(client redis.UniversalClient, ttl time.Duration) *RedisFormOptionsCache {
	return &RedisFormOptionsCache{client: client, ttl: ttl}
}

/*
GetFormOptions returns the cached lists.

Returns:
  - *FormOptions: nil on a miss
  - error: Connectivity or decoding failures
*/
func (cache *RedisFormOptionsCache) GetFormOptions(context context.Context) (*FormOptions, error) {
	raw, err := cache.client.Get(context, constants.RedisKeyFormOptions).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_form_options_get_failed: %w", err)
	}

	var options FormOptions
	if err := json.Unmarshal(raw, &options); err != nil {
		return nil, fmt.Errorf("redis_form_options_decode_failed: %w", err)
	}
	return &options, nil
}

func (cache *RedisFormOptionsCache) SetFormOptions(context context.Context, options *FormOptions) error {
	raw, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("redis_form_options_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, constants.RedisKeyFormOptions, raw, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_form_options_set_failed: %w", err)
	}
	return nil
}

func (cache *RedisFormOptionsCache) InvalidateFormOptions(context context.Context) error {
	if err := cache.client.Del(context, constants.RedisKeyFormOptions).Err(); err != nil {
		return fmt.Errorf("redis_form_options_delete_failed: %w", err)
	}
	return nil
}
