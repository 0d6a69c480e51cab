// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
tolgeefe serves a translation preview backed by static dictionaries or a live
Tolgee project.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/tolgeefe/config"
	"codeberg.org/pixivfe/tolgeefe/core/audit"
	"codeberg.org/pixivfe/tolgeefe/server"
)

const (
	// Values for http.Server timeouts.
	// ref: gosec: G112
	readHeaderTimeout time.Duration = 15 * time.Second
	readTimeout       time.Duration = 15 * time.Second
	writeTimeout      time.Duration = 20 * time.Second
	idleTimeout       time.Duration = 30 * time.Second

	serverShutdownDeadline time.Duration = 5 * time.Second
)

// main is the entry point of the application.
func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Application failed")
	}
}

// run orchestrates the application startup and graceful shutdown.
func run() error {
	audit.SetDefaultLogger()

	cfg := &config.ServerConfig{}
	if err := cfg.LoadConfig(os.Args[1:]); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize the preview server: %w", err)
	}

	srv := &http.Server{
		Handler:           app.Router,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	listener, err := listen(cfg.Basic.Host, cfg.Basic.Port)
	if err != nil {
		return err
	}

	serverErrors := make(chan error, 1)

	go func() {
		serverErrors <- srv.Serve(listener)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case s := <-quit:
		log.Info().Str("signal", s.String()).Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), serverShutdownDeadline)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
	}

	log.Info().Msg("Server exited gracefully")

	return nil
}

func listen(host, port string) (net.Listener, error) {
	addr := net.JoinHostPort(host, port)

	listener, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start TCP listener on %v: %w", addr, err)
	}

	addr = listener.Addr().String()

	_, boundPort, err := net.SplitHostPort(addr)
	if err != nil {
		_ = listener.Close()

		return nil, fmt.Errorf("failed to parse listener address %q: %w", addr, err)
	}

	log.Info().
		Str("address", addr).
		Str("url", fmt.Sprintf("http://localhost:%v/", boundPort)).
		Msg("Listening on address")

	return listener, nil
}
