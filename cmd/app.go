package cmd

import (
	"context"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/storekit/storeadm/config"
	"github.com/storekit/storeadm/internal/api"
	"github.com/storekit/storeadm/internal/cache"
	"github.com/storekit/storeadm/internal/catalog"
	"github.com/storekit/storeadm/internal/session"
)

const cacheFile = "cache.json"

// app bundles the collaborators every command needs: the session gate, the
// API client wired to it, and the cached catalog store.
type app struct {
	session *session.Manager
	client  *api.Client
	cache   *cache.Store
	store   *catalog.Store
}

// newApp wires the stack together. The session gate owns the credential
// file; a 401 on any protected request purges it and records the forced
// logout for the next login run.
func newApp() *app {
	log := logrus.StandardLogger()
	stateDir := config.GetStateDir()

	sess := session.NewManager(stateDir, log)
	client := api.NewClient(config.GetAPIURL(),
		api.WithTokenSource(sess),
		api.WithTimeout(config.GetAPITimeout()),
		api.WithUnauthorizedHandler(sess.ForceLogout),
		api.WithLogger(log),
	)

	store := cache.NewStore(log)
	store.LoadFile(cachePath())

	return &app{
		session: sess,
		client:  client,
		cache:   store,
		store: catalog.NewStore(client, store, catalog.Config{
			PageSize:      config.GetPageSize(),
			ProductsTTL:   config.GetProductsTTL(),
			CategoriesTTL: config.GetCategoriesTTL(),
			Logger:        log,
		}),
	}
}

// save persists the cache for the next invocation.
func (a *app) save() {
	if err := a.cache.SaveFile(cachePath()); err != nil {
		logrus.WithError(err).Debug("failed to persist cache")
	}
}

func cachePath() string {
	return filepath.Join(config.GetStateDir(), cacheFile)
}

// cmdContext is the root context for a command invocation.
func cmdContext() context.Context {
	return context.Background()
}
