package middleware

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

// ErrInvalidProxy адрес доверенного прокси не является IP или CIDR
var ErrInvalidProxy = errors.New("middleware: invalid trusted proxy")

// RateLimit ограничивает частоту запросов с одного клиента
// При ошибке лимитера запрос пропускается
func RateLimit(limiter Limiter, clients *ClientResolver, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clients.ClientKey(r)
			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Error("%s %s - Rate limiter error: %v", r.Method, r.URL.Path, err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				logger.Warn("%s %s - Rate limit exceeded for %s", r.Method, r.URL.Path, key)
				handlers.RespondTooManyRequests(w, msgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientResolver определяет IP клиента.
// X-Forwarded-For учитывается только если запрос пришел от доверенного прокси.
type ClientResolver struct {
	trusted []netip.Prefix
}

// NewClientResolver принимает список IP или CIDR доверенных прокси; пустой список = заголовок игнорируется
func NewClientResolver(trustedProxies []string) (*ClientResolver, error) {
	trusted := make([]netip.Prefix, 0, len(trustedProxies))
	for _, raw := range trustedProxies {
		raw = strings.TrimSpace(raw)
		if strings.Contains(raw, "/") {
			prefix, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrInvalidProxy, raw, err)
			}
			trusted = append(trusted, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidProxy, raw, err)
		}
		addr = addr.Unmap()
		trusted = append(trusted, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return &ClientResolver{trusted: trusted}, nil
}

// ClientKey IP клиента.
// RemoteAddr, если он не доверенный прокси. Иначе X-Forwarded-For читается справа налево
// до первого недоверенного адреса.
func (c *ClientResolver) ClientKey(r *http.Request) string {
	remote := remoteHost(r)
	if !c.isTrusted(remote) {
		return remote
	}

	hops := forwardedHops(r)
	for i := len(hops) - 1; i >= 0; i-- {
		if !c.isTrusted(hops[i]) {
			return hops[i]
		}
	}
	if len(hops) > 0 {
		return hops[0]
	}
	return remote
}

func (c *ClientResolver) isTrusted(ip string) bool {
	if c == nil || len(c.trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range c.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func forwardedHops(r *http.Request) []string {
	var hops []string
	for _, header := range r.Header.Values("X-Forwarded-For") {
		for _, part := range strings.Split(header, ",") {
			if hop := strings.TrimSpace(part); hop != "" {
				hops = append(hops, hop)
			}
		}
	}
	return hops
}

type memoryClient struct {
	limiter *rate.Limiter
	seen    time.Time
}

// MemoryLimiter token bucket на каждого клиента внутри процесса
type MemoryLimiter struct {
	mu      sync.Mutex
	clients map[string]*memoryClient
	rps     rate.Limit
	burst   int
	ttl     time.Duration
}

// NewMemoryLimiter создает лимитер; неактивные клиенты удаляются, пока не закрыт stopCh
func NewMemoryLimiter(rps float64, burst int, stopCh <-chan struct{}) *MemoryLimiter {
	l := &MemoryLimiter{
		clients: make(map[string]*memoryClient),
		rps:     rate.Limit(rps),
		burst:   burst,
		ttl:     3 * time.Minute,
	}
	if stopCh != nil {
		go l.cleanup(time.Minute, stopCh)
	}
	return l
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[key]
	if !ok {
		c = &memoryClient{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[key] = c
	}
	c.seen = time.Now()
	return c.limiter.Allow(), nil
}

func (l *MemoryLimiter) cleanup(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			l.mu.Lock()
			for key, c := range l.clients {
				if time.Since(c.seen) > l.ttl {
					delete(l.clients, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

// redisFixedWindow INCR с установкой TTL на первом запросе окна
var redisFixedWindow = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisLimiter фиксированное окно в Redis, общее для всех экземпляров сервиса
type RedisLimiter struct {
	rdb    redis.Scripter
	limit  int
	window time.Duration
	prefix string
}

// NewRedisLimiter создает лимитер: не больше limit запросов за window
func NewRedisLimiter(rdb redis.Scripter, limit int, window time.Duration, prefix string) *RedisLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if prefix == "" {
		prefix = "rl"
	}
	return &RedisLimiter{rdb: rdb, limit: limit, window: window, prefix: prefix}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	res, err := redisFixedWindow.Run(ctx, l.rdb, []string{l.prefix + ":" + key}, l.window.Milliseconds()).Result()
	if err != nil {
		return false, err
	}

	var count int64
	switch v := res.(type) {
	case int64:
		count = v
	case string:
		count, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("unexpected redis script result type %T", res)
	}

	return count <= int64(l.limit), nil
}
