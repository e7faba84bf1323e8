package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/cache"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/config"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/database"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/logger"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logger.Init(cfg.Env, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if err := database.Init(cfg); err != nil {
		log.Fatal("No se pudo iniciar la base de datos", zap.Error(err))
	}

	// sin Redis el catálogo se lee siempre de la base
	store, err := cache.New(cfg.RedisURL, time.Duration(cfg.CatalogCacheTTLSec)*time.Second)
	if err != nil {
		log.Warn("Redis no disponible, cache deshabilitado", zap.Error(err))
		store, _ = cache.New("", 0)
	}
	defer func() { _ = store.Close() }()

	app := server.New(cfg, store)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		log.Info("Apagando servidor")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("Error al apagar el servidor", zap.Error(err))
		}
	}()

	log.Info("Servidor escuchando", zap.String("port", cfg.HTTPPort), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal("El servidor se detuvo", zap.Error(err))
	}
}
