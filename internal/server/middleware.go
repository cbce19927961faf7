package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	commonhttp "github.com/sngm3741/medibook-services/api/internal/interfaces/http/common"
)

// requestLogger は chi の middleware.Logger の代わりに zap で 1 リクエスト 1 行を出力する。
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("requestId", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote", r.RemoteAddr),
			)
		})
	}
}

// clientLimiter はクライアント IP ごとのトークンバケットを保持する。
// バケットが満タンに戻るまでの時間より長く使われていないエントリは掃除する。
type clientLimiter struct {
	mu        sync.Mutex
	clients   map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
	logger    *zap.Logger
	onReject  func()
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiter(perMinute, burst int, logger *zap.Logger, onReject func()) *clientLimiter {
	interval := time.Minute / time.Duration(perMinute)
	return &clientLimiter{
		clients:  make(map[string]*limiterEntry),
		limit:    rate.Every(interval),
		burst:    burst,
		idleTTL:  max(time.Duration(burst)*interval, time.Minute),
		now:      time.Now,
		logger:   logger,
		onReject: onReject,
	}
}

func (c *clientLimiter) get(key string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweep(now)

	entry, ok := c.clients[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(c.limit, c.burst)}
		c.clients[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// sweep は idleTTL ごとに 1 回だけ走る。呼び出し側でロック済みであること。
func (c *clientLimiter) sweep(now time.Time) {
	if c.lastSweep.IsZero() {
		c.lastSweep = now
		return
	}
	if now.Sub(c.lastSweep) < c.idleTTL {
		return
	}
	for key, entry := range c.clients {
		if now.Sub(entry.lastSeen) >= c.idleTTL {
			delete(c.clients, key)
		}
	}
	c.lastSweep = now
}

func (c *clientLimiter) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clients)
}

// middleware rejects requests over the budget with 429.
func (c *clientLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		if !c.get(key).Allow() {
			c.logger.Warn("rate limit exceeded", zap.String("client", key), zap.String("path", r.URL.Path))
			if c.onReject != nil {
				c.onReject()
			}
			w.Header().Set("Retry-After", "60")
			commonhttp.WriteError(c.logger, w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey は RealIP 適用後の RemoteAddr からポートを除いた値。
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
