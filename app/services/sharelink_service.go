package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mymenu/mymenu/app/models"
	"github.com/mymenu/mymenu/app/repositories"
	"github.com/mymenu/mymenu/config"
	"github.com/mymenu/mymenu/pkg/cache"
	"github.com/mymenu/mymenu/pkg/metrics"
)

// ShareLinkService resolves public share tokens to full menu trees. Results
// are cached briefly in Redis since diners hammer the same token while
// owners edit rarely.
type ShareLinkService struct {
	restaurants *repositories.RestaurantRepository
}

func NewShareLinkService(restaurants *repositories.RestaurantRepository) *ShareLinkService {
	return &ShareLinkService{restaurants: restaurants}
}

func shareCacheKey(token string) string { return "share:" + token }

// Resolve returns the restaurant tree behind a share token, or ErrNotFound.
// No authentication involved; the token itself is the capability.
func (s *ShareLinkService) Resolve(token string) (models.Restaurant, error) {
	if token == "" {
		metrics.ShareResolves.WithLabelValues("miss").Inc()
		return models.Restaurant{}, ErrNotFound
	}

	var cached models.Restaurant
	if cache.Get(shareCacheKey(token), &cached) {
		metrics.ShareResolves.WithLabelValues("cache").Inc()
		return cached, nil
	}

	restaurant, err := s.restaurants.FindByShareToken(token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		metrics.ShareResolves.WithLabelValues("miss").Inc()
		return models.Restaurant{}, ErrNotFound
	} else if err != nil {
		return models.Restaurant{}, fmt.Errorf("sharelink: resolve: %w", err)
	}

	_ = cache.Set(shareCacheKey(token), restaurant, config.ShareCacheTTL())
	metrics.ShareResolves.WithLabelValues("db").Inc()
	return restaurant, nil
}

// Invalidate drops the cached tree for every access link of a restaurant.
// Called after any mutation under that restaurant so diners never see a
// stale menu for longer than one cache window.
func (s *ShareLinkService) Invalidate(restaurantID string) {
	restaurant, err := s.restaurants.FindTree(restaurantID)
	if err != nil {
		return
	}
	for _, link := range restaurant.AccessLinks {
		_ = cache.Del(shareCacheKey(link.ShareToken))
	}
}
