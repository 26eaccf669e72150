package cli

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridastar/internal/server"
	"github.com/katalvlaran/gridastar/metrics"
	"github.com/katalvlaran/gridastar/session"
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	server.Config
	redisAddr     string
	redisPassword string
	redisDB       int
}

func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{Config: server.DefaultConfig()}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve search sessions over HTTP",
		Long: `Serve exposes interactive search sessions over a JSON API, plus /metrics
for Prometheus and /healthz. Sessions live in memory unless --redis is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			var store session.Store = session.NewMemoryStore()
			var health server.HealthService
			if opts.redisAddr != "" {
				rs, err := session.NewRedisStore(ctx, session.RedisConfig{
					Addr:      opts.redisAddr,
					Password:  opts.redisPassword,
					DB:        opts.redisDB,
					KeyPrefix: appName + ":session:",
				})
				if err != nil {
					return err
				}
				store, health = rs, rs
				logger.Info("using redis session store", "addr", opts.redisAddr)
			}
			defer store.Close()

			if mem, ok := store.(*session.MemoryStore); ok {
				go sweep(ctx, mem, opts.SessionTTL)
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			m := metrics.New(reg)

			api := server.NewAPIHandlers(logger, store, m, opts.SessionTTL)
			router := server.NewRouter(logger, server.RouterDependencies{API: api, Health: health, Gatherer: reg})
			return server.New(logger, opts.Config, router).Run(ctx)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&opts.Addr, "addr", opts.Addr, "listen address")
	fs.DurationVar(&opts.SessionTTL, "ttl", opts.SessionTTL, "session lifetime since last use")
	fs.StringVar(&opts.redisAddr, "redis", "", "redis address for shared sessions (host:port)")
	fs.StringVar(&opts.redisPassword, "redis-password", "", "redis password")
	fs.IntVar(&opts.redisDB, "redis-db", 0, "redis database number")
	return cmd
}

// sweep drops expired in-memory sessions every ttl until ctx is done.
func sweep(ctx context.Context, store *session.MemoryStore, ttl time.Duration) {
	t := time.NewTicker(ttl)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			store.Cleanup(ctx)
		}
	}
}
