package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/postmarkit/internal/config"
	"github.com/dmitrymomot/postmarkit/pkg/cache"
	"github.com/dmitrymomot/postmarkit/pkg/health"
	"github.com/dmitrymomot/postmarkit/pkg/logger"
	"github.com/dmitrymomot/postmarkit/pkg/mailer/resend"
	"github.com/dmitrymomot/postmarkit/pkg/postmark"
	"github.com/dmitrymomot/postmarkit/pkg/redis"
	"github.com/dmitrymomot/postmarkit/pkg/senders"
	"github.com/dmitrymomot/postmarkit/pkg/suppression"
	"github.com/dmitrymomot/postmarkit/pkg/transport"
	"github.com/dmitrymomot/postmarkit/pkg/validate"
)

// app holds the wired dependencies shared by every subcommand.
type app struct {
	cfg *config.Config
	log *slog.Logger

	server       *postmark.Client
	account      *postmark.AccountClient
	senders      *senders.Permitted
	suppressions *suppression.List
	checks       health.Checks

	closers []func() error
	flush   func(time.Duration) bool
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, checks: health.Checks{}}
	if err := a.initLogger(); err != nil {
		a.log.WarnContext(ctx, "sentry disabled", slog.Any("error", err))
	}

	store, err := a.initStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.server = postmark.New(cfg.Postmark, postmark.WithLogger(a.log))
	a.account = postmark.NewAccount(cfg.Postmark, postmark.WithLogger(a.log))
	a.checks["postmark"] = postmark.Healthcheck(a.server)

	if a.senders, err = senders.New(a.account, store); err != nil {
		a.Close()
		return nil, err
	}
	if a.suppressions, err = suppression.New(a.server, store); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) initLogger() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := []logger.Option{
		logger.WithWriter(os.Stderr),
		logger.WithLevel(level),
		logger.WithExtractors(logger.TaskExtractor),
	}
	if a.cfg.Log.Format == "text" {
		opts = append(opts, logger.WithText())
	}

	log, flush, err := logger.NewWithSentry(a.cfg.Sentry, opts...)
	a.log, a.flush = log, flush
	return err
}

func (a *app) initStore(ctx context.Context) (cache.Store, error) {
	if a.cfg.Redis.URL == "" {
		mem := cache.NewMemory(cache.WithTTL(a.cfg.Cache.TTL))
		a.closers = append(a.closers, mem.Close)
		return mem, nil
	}

	client, err := redis.Open(ctx, a.cfg.Redis.URL, redis.WithLogger(a.log))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client.Close)
	a.checks["redis"] = redis.Healthcheck(client)

	return cache.NewRedis(client,
		cache.WithRedisTTL(a.cfg.Cache.TTL),
		cache.WithPrefix(a.cfg.Cache.Prefix),
	), nil
}

// transport returns a Transport delivering through via ("postmark" or
// "resend") with the default checks plus extra.
func (a *app) transport(via string, extra ...validate.MessageCheck) (*transport.Transport, error) {
	var sender transport.Sender
	switch via {
	case "", "postmark":
		sender = a.server
	case "resend":
		s, err := resend.New(a.cfg.Resend)
		if err != nil {
			return nil, err
		}
		sender = s
	default:
		return nil, fmt.Errorf("unknown sender %q", via)
	}
	return transport.New(sender, transport.WithValidator(validate.NewMessageValidator(extra...)))
}

func (a *app) Close() {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	if err := errors.Join(errs...); err != nil && a.log != nil {
		a.log.Warn("shutdown", slog.Any("error", err))
	}
	if a.flush != nil {
		a.flush(2 * time.Second)
	}
}
