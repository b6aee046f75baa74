package persist

import (
	"context"

	"github.com/angelmondragon/storefront-backend/internal/blobstore"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

// Deps carries what every store of one visitor shares.
type Deps struct {
	Backend blobstore.Backend
	Scope   string
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics
	Report  *LoadReport
}

// Open loads the container for one named store.
func Open[S any](ctx context.Context, deps Deps, name string, def func() S, sanitize func(S) S) *Container[S] {
	return Load(ctx, Options[S]{
		Backend:  deps.Backend,
		Scope:    deps.Scope,
		Name:     name,
		Default:  def,
		Sanitize: sanitize,
		Logger:   deps.Logger,
		Metrics:  deps.Metrics,
		Report:   deps.Report,
	})
}
