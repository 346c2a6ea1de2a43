package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/uniadmin/records-console/config"
	redisadapter "github.com/uniadmin/records-console/internal/adapters/redis"
	"github.com/uniadmin/records-console/internal/apiclient"
	"github.com/uniadmin/records-console/internal/service"
)

// Services holds the wired application services.
type Services struct {
	API      *apiclient.Client
	Sessions *service.SessionService
}

// ServiceDeps contains dependencies for building services.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices builds the records API client and the session service.
func NewServices(deps *ServiceDeps) (*Services, error) {
	api, err := apiclient.New(apiclient.Config{
		BaseURL: deps.Config.API.BaseURL,
		Timeout: deps.Config.API.Timeout,
		Logger:  deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build records API client: %w", err)
	}

	sessions := service.NewSessionService(service.SessionServiceOptions{
		API:      api,
		Sessions: redisadapter.NewSessionStore(deps.RedisClient),
		Logger:   deps.Logger,
	})

	return &Services{API: api, Sessions: sessions}, nil
}
