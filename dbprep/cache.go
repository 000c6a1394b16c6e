package dbprep

import (
	"os"

	"github.com/gomodule/redigo/redis"
)

// ClearCache flushes everything from the Redis cache: sessions,
// puzzle entries, and memoized solutions.
func ClearCache() error {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/"
	}
	conn, err := redis.DialURL(url)
	if err != nil {
		return err
	}
	_, err = conn.Do("FLUSHALL")
	if err != nil {
		return err
	}
	conn.Close()
	return nil
}
