package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wanderly-app/pollsvc/internal/logger"
	"github.com/wanderly-app/pollsvc/internal/poll"
	"github.com/wanderly-app/pollsvc/internal/sources/places"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time // for testing, defaults to time.Now
	Engine        *poll.Engine     // poll engine (folders, votes, tallies)
	Catalog       *places.Catalog  // in-memory places catalog
	RedisClient   *redis.Client    // Redis client connection, nil in tests
	PublicURL     string           // base URL for voting share links
	ReloadTrigger chan struct{}    // channel to trigger manual catalog reload
}

// Now returns the injected clock, falling back to time.Now.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
