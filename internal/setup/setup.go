package setup

import (
	"context"
	"fmt"

	"github.com/fedipost-dev/fedipost/internal/compose"
	"github.com/fedipost-dev/fedipost/internal/handler"
	"github.com/fedipost-dev/fedipost/internal/mastoclient"
	"github.com/fedipost-dev/fedipost/internal/store"
	"github.com/fedipost-dev/fedipost/shared/config"
	"github.com/fedipost-dev/fedipost/shared/logger"
)

type Dependencies struct {
	Handler *handler.Handler
	Manager *compose.Manager
	Store   *store.Store
	Client  *mastoclient.Client
}

func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	st, err := store.New(cfg.Env.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	client := mastoclient.New(cfg.Env.InstanceURL, cfg.Env.AccessToken, cfg.Public.RequestTimeout)

	self, err := client.VerifyCredentials(ctx)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to verify credentials: %w", err)
	}
	logger.Log.Info("authenticated against instance",
		"instance", cfg.Env.InstanceURL,
		"account", self.Acct)

	manager := compose.NewManager(compose.Deps{
		API:             client,
		Languages:       st,
		Self:            *self,
		DefaultLanguage: cfg.Public.DefaultLanguage,
	})

	return &Dependencies{
		Handler: handler.New(manager, st),
		Manager: manager,
		Store:   st,
		Client:  client,
	}, nil
}
