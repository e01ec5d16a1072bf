package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	// defaultOperationTimeout is the timeout for individual Redis operations
	defaultOperationTimeout = 5 * time.Second

	lessonTTL     = 10 * time.Minute
	lessonListTTL = 2 * time.Minute
)

type Cache struct {
	client  *redis.Client
	enabled bool
}

func NewCache(addr string, enable bool) (*Cache, error) {
	if !enable {
		return &Cache{enabled: false}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     "",
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{
		client:  client,
		enabled: true,
	}, nil
}

func (c *Cache) operationContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), defaultOperationTimeout)
}

func (c *Cache) Set(key string, value interface{}, expiration time.Duration) error {
	if !c.enabled {
		return nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, jsonData, expiration).Err()
}

func (c *Cache) Get(key string, dest interface{}) error {
	if !c.enabled {
		return fmt.Errorf("cache disabled")
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return fmt.Errorf("key not found")
	} else if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func (c *Cache) Delete(key string) error {
	if !c.enabled {
		return nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	return c.client.Del(ctx, key).Err()
}

func (c *Cache) DeletePattern(pattern string) error {
	if !c.enabled {
		return nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *Cache) FlushAll() error {
	if !c.enabled {
		return nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	return c.client.FlushAll(ctx).Err()
}

func (c *Cache) Close() error {
	if !c.enabled {
		return nil
	}
	return c.client.Close()
}

func lessonKey(wikiSlug, identifier string) string {
	return fmt.Sprintf("lesson:%s:%s", wikiSlug, identifier)
}

func lessonListKey(wikiSlug string) string {
	return fmt.Sprintf("lessons:%s", wikiSlug)
}

func (c *Cache) CacheLesson(wikiSlug, identifier string, lesson interface{}) error {
	return c.Set(lessonKey(wikiSlug, identifier), lesson, lessonTTL)
}

func (c *Cache) GetLesson(wikiSlug, identifier string, dest interface{}) error {
	return c.Get(lessonKey(wikiSlug, identifier), dest)
}

func (c *Cache) CacheLessonList(wikiSlug string, lessons interface{}) error {
	return c.Set(lessonListKey(wikiSlug), lessons, lessonListTTL)
}

func (c *Cache) GetLessonList(wikiSlug string, dest interface{}) error {
	return c.Get(lessonListKey(wikiSlug), dest)
}

// InvalidateWiki drops every cached lesson and listing for one tenant.
// Called after any save or reorder.
func (c *Cache) InvalidateWiki(wikiSlug string) error {
	if err := c.DeletePattern(fmt.Sprintf("lesson:%s:*", wikiSlug)); err != nil {
		return err
	}
	return c.Delete(lessonListKey(wikiSlug))
}
