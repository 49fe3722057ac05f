package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"jobrater/internal/server"
	"jobrater/internal/woo"
)

type ServeCmd struct {
	Addr    string `help:"Listen address (overrides config)."`
	Proxies string `help:"Comma-separated proxy URLs." env:"JOBRATER_PROXIES"`
}

func (s *ServeCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	addr := s.Addr
	if addr == "" {
		addr = cfg.ListenAddr
	}

	source, err := newSource(ctx, s.Proxies)
	if err != nil {
		return err
	}
	pipe := newPipeline(ctx, source)
	wooClient := woo.NewClient(cfg.WooURL, cfg.WooKey, cfg.WooSecret)

	srv := &http.Server{
		Addr:    addr,
		Handler: server.New(pipe, source, wooClient, cfg.AllowedOrigins, ctx.Logger).Handler(),
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		ctx.Logger.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-runCtx.Done():
	}

	ctx.Logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
