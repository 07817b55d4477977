package cache

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rshade/dealerdesk/internal/logging"
)

// Fetch returns the cached value under key, or calls load and caches its
// result. Cache failures never fail the call; they are logged and load's
// result is returned as is. A nil store always calls load.
func Fetch[T any](ctx context.Context, s *Store, key, operation string, load func(context.Context) (T, error)) (T, error) {
	log := logging.FromContext(ctx)

	if s != nil && s.Enabled() {
		entry, err := s.Get(key)
		switch {
		case err == nil:
			var v T
			if decodeErr := entry.Decode(&v); decodeErr == nil {
				log.Debug().Ctx(ctx).
					Str("component", "cache").
					Str("operation", operation).
					Dur("age", entry.Age()).
					Msg("cache hit")
				return v, nil
			}
			log.Warn().Ctx(ctx).
				Str("component", "cache").
				Str("operation", operation).
				Msg("discarding undecodable cache entry")
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrExpired):
		default:
			log.Warn().Ctx(ctx).Str("component", "cache").Err(err).Msg("cache read failed")
		}
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	if s != nil && s.Enabled() {
		data, marshalErr := json.Marshal(v)
		if marshalErr == nil {
			marshalErr = s.Set(key, operation, data)
		}
		if marshalErr != nil {
			log.Warn().Ctx(ctx).Str("component", "cache").Err(marshalErr).Msg("cache write failed")
		}
	}
	return v, nil
}
