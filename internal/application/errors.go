package application

import (
	"errors"
	"expvar"

	"github.com/oksasatya/storefront-api/internal/domain/repository"
	"github.com/oksasatya/storefront-api/pkg/apperror"
)

// Counters published on /api/debug/vars.
var metrics = expvar.NewMap("storefront")

const (
	metricOrdersPlaced       = "orders_placed"
	metricOrderEmailFailures = "order_email_failures"
	metricCatalogCacheHits   = "catalog_cache_hits"
	metricCatalogCacheMisses = "catalog_cache_misses"
	metricIndexFailures      = "search_index_failures"
)

const msgInvalidInput = "Invalid input"

// repoError converts repository sentinels into typed application errors.
// notFound is the message used when the row does not exist. A foreign key
// failure without a client field to blame is internal; use refError first
// where the request names the referenced id.
func repoError(op, notFound string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NotFound(notFound)
	case errors.Is(err, repository.ErrDuplicate):
		return apperror.Conflict("Slug already exists")
	case errors.Is(err, repository.ErrInvalidValue):
		return apperror.Validation(msgInvalidInput, nil)
	default:
		return apperror.Internal(op, err)
	}
}

// refError reports a foreign key failure against the request field that
// carried the id. It returns nil for any other error.
func refError(field string, err error) error {
	if errors.Is(err, repository.ErrInvalidReference) {
		return apperror.Validation(msgInvalidInput, map[string]string{field: "does not exist"})
	}
	return nil
}

// staleSession reports writes whose owning user row is gone: the session
// outlived its account.
func staleSession(err error) error {
	if errors.Is(err, repository.ErrInvalidReference) {
		return apperror.Unauthorized("Unauthorized")
	}
	return nil
}
