package cache

import (
	"os"
	"time"
)

// DefaultTTL is how long directory entries stay cached when no explicit
// TTL is configured.
const DefaultTTL = 5 * time.Minute

// TTLFromEnv は DIRECTORY_CACHE_TTL をGoのduration表記（"10m"、"1h"など）として読み取ります。
// 未設定または不正な値の場合は DefaultTTL を返します。
func TTLFromEnv() time.Duration {
	v := os.Getenv("DIRECTORY_CACHE_TTL")
	if v == "" {
		return DefaultTTL
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return DefaultTTL
	}
	return d
}
