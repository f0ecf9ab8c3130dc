// Package ratelimiter は外部APIへの呼び出し頻度を固定ウィンドウで制限します。
package ratelimiter

import (
	"log/slog"
	"sync"
	"time"
)

// Limiter はウィンドウあたりの呼び出し回数を制限します。
// 上限に達した呼び出しはウィンドウが明けるまでブロックします。
type Limiter struct {
	mu          sync.Mutex
	maxCalls    int           // ウィンドウあたりの上限
	window      time.Duration // リセット単位
	calls       int
	windowStart time.Time
}

// New は maxCalls 回/window を許可するLimiterを生成します。
func New(maxCalls int, window time.Duration) *Limiter {
	return &Limiter{
		maxCalls:    maxCalls,
		window:      window,
		windowStart: time.Now(),
	}
}

// Wait は現在のウィンドウに空きが出るまでブロックします。
func (l *Limiter) Wait() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.windowStart) >= l.window {
		l.calls = 0
		l.windowStart = now
	}

	l.calls++
	if l.calls > l.maxCalls {
		sleep := l.window - now.Sub(l.windowStart)
		if sleep > 0 {
			slog.Info("rate limit reached, waiting", "max_calls", l.maxCalls, "sleep", sleep)
			time.Sleep(sleep)
		}
		l.calls = 1
		l.windowStart = time.Now()
	}
}
