package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/veldbloem/storefront/internal/backend"
	"github.com/veldbloem/storefront/internal/cart"
	"github.com/veldbloem/storefront/internal/checkout"
	"github.com/veldbloem/storefront/internal/config"
	"github.com/veldbloem/storefront/internal/httpapi"
)

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	var keeper cart.Keeper
	var tokens checkout.TokenStore

	switch cfg.Cart.Driver {
	case "memory":
		// Development mode: carts die with the process.
		keeper = cart.NewMemoryKeeper()
		tokens = checkout.NewMemoryTokens()
	default:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect to redis: ", err)
		}
		keeper = cart.NewRedisKeeper(rdb, cfg.Cart.TTL)
		tokens = checkout.NewRedisTokens(rdb, time.Hour)
	}

	cartStore := cart.NewStore(keeper)
	backendClient := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	checkoutSvc := checkout.NewService(cartStore, backendClient, tokens, cfg.Shop.DefaultCountry)

	server := httpapi.NewServer(cartStore, checkoutSvc, backendClient, cfg.Shop.DefaultLocale)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      server.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.WithFields(log.Fields{
		"backend_url": cfg.Backend.BaseURL,
		"cart_driver": cfg.Cart.Driver,
	}).Info("Storefront starting on port " + cfg.Server.Port)

	if err := srv.ListenAndServe(); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
