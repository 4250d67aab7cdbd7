package middleware

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

var limiterSeq atomic.Uint64

// RateLimit allows perMinute submissions per client IP with a small burst.
// A non-positive perMinute disables limiting.
func RateLimit(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	every := time.Minute / time.Duration(perMinute)
	burst := perMinute / 2
	if burst < 1 {
		burst = 1
	}

	// limiter 캐시는 패키지 전역이므로 인스턴스별 prefix로 구분
	prefix := strconv.FormatUint(limiterSeq.Add(1), 10) + "|"

	return limit.NewRateLimiter(func(c *gin.Context) string {
		return prefix + c.ClientIP()
	}, func(c *gin.Context) (*rate.Limiter, time.Duration) {
		return rate.NewLimiter(rate.Every(every), burst), time.Hour
	}, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please try again later"})
	})
}
