package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// Rate Limit Tiers
const (
	// Auth / login (Strict)
	limitStrict = rate.Limit(2)
	burstStrict = 5

	// General (Default)
	limitGeneral = rate.Limit(10)
	burstGeneral = 20

	// Internal / trusted services
	limitInternal = rate.Limit(100)
	burstInternal = 200
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*visitor)
	mu       sync.Mutex
)

// init starts the background cleanup routine.
func init() {
	go cleanupVisitors()
}

// getVisitor retrieves or creates a rate limiter for the given bucket key.
func getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors removes old entries from the visitors map to prevent memory leaks.
func cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		mu.Lock()
		for key, v := range visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(visitors, key)
			}
		}
		mu.Unlock()
	}
}

// RateLimit checks if the request is allowed by the rate limiter for its tier.
func RateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit, burst, tier := resolveRateTier(c)

		// Prefer the authenticated user over the client IP so a NAT'd
		// office doesn't share one bucket.
		var identity string
		if claims, ok := ClaimsFromContext(c); ok {
			identity = "user:" + claims.UserID
		} else if deviceID := c.Request().Header.Get("X-Device-ID"); deviceID != "" {
			identity = "device:" + deviceID
		} else {
			identity = "ip:" + c.RealIP()
		}

		// Same user gets separate quotas for strict vs general actions.
		key := fmt.Sprintf("%s:%s", identity, tier)

		limiter := getVisitor(key, limit, burst)
		if !limiter.Allow() {
			return c.JSON(http.StatusTooManyRequests, echo.Map{
				"error": http.StatusText(http.StatusTooManyRequests),
			})
		}

		return next(c)
	}
}

// resolveRateTier determines which rate limit policy applies to the request.
func resolveRateTier(c echo.Context) (rate.Limit, int, string) {
	// Internal / trusted services carry a shared secret header.
	internalKey := os.Getenv("INTERNAL_SECRET_KEY")
	if internalKey != "" && c.Request().Header.Get("X-Service-Auth") == internalKey {
		return limitInternal, burstInternal, "internal"
	}

	if strings.HasPrefix(c.Request().URL.Path, "/api/auth/") {
		return limitStrict, burstStrict, "strict"
	}

	return limitGeneral, burstGeneral, "general"
}
