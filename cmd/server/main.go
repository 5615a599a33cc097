package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/nmorales-b/weather-agent/internal/agent"
	"github.com/nmorales-b/weather-agent/internal/config"
	"github.com/nmorales-b/weather-agent/internal/httpx"
	"github.com/nmorales-b/weather-agent/internal/query"
	"github.com/nmorales-b/weather-agent/internal/server"
	"github.com/nmorales-b/weather-agent/internal/tools"
	"github.com/nmorales-b/weather-agent/internal/weather"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	shutdown, err := httpx.InitTelemetry(ctx, "weather-agent")
	if err != nil {
		log.Fatalf("telemetry init error: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	cfg := config.Load()

	var provider weather.Provider
	if cfg.LiveEnabled() {
		provider = weather.NewOpenWeatherMap(cfg.ProviderAPIKey, cfg.ProviderBaseURL, cfg.ProviderTimeout)
		slog.Info("Live weather provider configured", "default_city", cfg.DefaultCity)
	} else {
		slog.Info("No provider key configured, serving generated data", "default_city", cfg.DefaultCity)
	}

	resolver := weather.NewResolver(provider, weather.ResolverOptions{
		DefaultCity:    cfg.DefaultCity,
		Retries:        cfg.RetryCount,
		Wait:           cfg.RetryWait,
		AttemptTimeout: cfg.ProviderTimeout,
	})

	registry := tools.NewRegistry()
	mustRegister(registry, tools.WeatherDefinition(), tools.WeatherHandler(resolver))
	mustRegister(registry, tools.ForecastDefinition(), tools.ForecastHandler(resolver))
	for _, def := range registry.List() {
		slog.Info("Tool registered", "name", def.Name, "desc", def.Description)
	}

	srv := server.New(registry)
	pipeline := agent.New(query.NewInterpreter(query.DefaultGazetteer()), srv)

	r := mux.NewRouter()
	r.Use(
		httpx.Logger(),
		httpx.Recovery(),
	)

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "weather-agent tool server")
	})
	r.HandleFunc("/query", pipeline.Handler()).Methods(http.MethodPost)

	api := mux.NewRouter()
	srv.Routes(api)
	r.PathPrefix("/tools/").Handler(otelhttp.NewHandler(
		httpx.MetricsMiddleware(api),
		"tools.api",
	))

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	slog.Info("Starting the server...", "addr", cfg.ListenAddr)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
}

func mustRegister(r *tools.Registry, def tools.Definition, h tools.Handler) {
	if err := r.Register(def, h); err != nil {
		log.Fatalf("tool registration error: %v", err)
	}
}
