package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"bookify/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// Session token hashes live in the auth cache under these parameters. The
// TTL is refreshed on every authenticated request.
const (
	sessionCachePrefix = "session:"
	sessionCacheTTL    = 10 * time.Minute
)

// SessionAuthMiddleware authenticates requests with a Bearer session token.
// The token hash is checked against the Redis auth cache when available;
// a cache outage degrades to signature-only validation instead of locking
// everyone out.
func SessionAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Recover from unexpected panics.
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  500,
				})
			}
		}()

		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		userID, role, err := utils.ExtractSessionFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := sessionCachePrefix + userID

		authCache := utils.GetAuthCacheClient()
		if authCache == nil {
			log.Printf("WARNING: Auth cache client not available. Accepting token on signature only.")
		} else {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash != computedHash {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
						"error": "Token mismatch",
						"code":  0,
					})
					return
				}
				_ = authCache.Expire(ctx, cacheKey, sessionCacheTTL).Err()
			} else if err != redis.Nil {
				log.Printf("WARNING: Error retrieving auth cache key: %v. Accepting token on signature only.", err)
			} else {
				// First sighting of this session: remember the hash so a
				// reissued token invalidates the old one.
				_ = authCache.Set(ctx, cacheKey, computedHash, sessionCacheTTL).Err()
			}
		}

		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}
