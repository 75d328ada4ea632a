package service

import (
	postgres "github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository/postgres"
	redis "github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository/redis"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/service/availability"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/service/boarding"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/service/cancellation"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/service/catalog"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/service/sales"
)

type Services struct {
	Availability *availability.Service
	Sales        *sales.Service
	Cancellation *cancellation.Service
	Boarding     *boarding.Service
	Catalog      *catalog.Service
}

type Config struct {
	Availability availability.Config
	Sales        sales.Config
	Cancellation cancellation.Config
	Boarding     boarding.Config
}

func NewServices(
	store *postgres.Store,
	cache *redis.Cache,
	pubsub sales.OccurrencePublisher,
	limiter *redis.SlidingWindowLimiter,
	cfg Config,
) *Services {
	return &Services{
		Availability: availability.New(store, cache, cfg.Availability),
		Sales:        sales.New(store, cache, pubsub, limiter, cfg.Sales),
		Cancellation: cancellation.New(store, cache, pubsub, cfg.Cancellation),
		Boarding:     boarding.New(store, cfg.Boarding),
		Catalog:      catalog.New(store),
	}
}
