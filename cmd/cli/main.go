package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/dataflow/internal/buildinfo"
	"github.com/dmitrijs2005/dataflow/internal/client/auth"
	"github.com/dmitrijs2005/dataflow/internal/client/cli"
	"github.com/dmitrijs2005/dataflow/internal/client/client"
	"github.com/dmitrijs2005/dataflow/internal/client/config"
	"github.com/dmitrijs2005/dataflow/internal/client/services"
	"github.com/dmitrijs2005/dataflow/internal/client/session"
	"github.com/dmitrijs2005/dataflow/internal/filex"
	"github.com/dmitrijs2005/dataflow/internal/flagx"
	"github.com/dmitrijs2005/dataflow/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "dataflow:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := flagx.Positional(os.Args[1:], config.FlagsWithValue)
	if len(args) == 0 {
		buildinfo.PrintBuildData(os.Stdout)
	}

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer closeStore()

	gateway, err := client.NewGateway(client.GatewayOptions{
		BaseURL: cfg.APIBaseURL,
		Store:   store,
		Timeout: cfg.RequestTimeout,
		Logger:  log.With("component", "gateway"),
	})
	if err != nil {
		return err
	}

	controller := auth.NewController(store, gateway, log.With("component", "auth"))
	app := cli.NewApp(services.NewAccountService(gateway), os.Stdin, os.Stdout, log.With("component", "cli"))
	app.SetSessionStore(store)
	gateway.SetNavigator(app)

	log.Debug(ctx, "starting", "api_url", cfg.APIBaseURL, "session_store", cfg.SessionStore, "version", buildinfo.Version)

	controller.Init(ctx)
	app.Run(auth.WithProvider(ctx, controller), args)
	return nil
}

// openStore builds the session store selected in cfg. The returned func
// releases whatever the store holds open.
func openStore(ctx context.Context, cfg *config.Config, log logging.Logger) (session.Store, func(), error) {
	kind, err := session.ParseKind(cfg.SessionStore)
	if err != nil {
		return nil, nil, err
	}

	if kind == session.KindMemory {
		return session.NewMemoryStore(""), func() {}, nil
	}

	if _, err := filex.EnsureDir(cfg.DataDir); err != nil {
		return nil, nil, err
	}

	if kind == session.KindFile {
		return session.NewFileStore(cfg.TokenPath()), func() {}, nil
	}

	db, err := client.InitDatabase(ctx, cfg.DatabasePath())
	if err != nil {
		return nil, nil, err
	}
	return session.NewSQLiteStore(db), closer(ctx, db, "session database", log), nil
}

func closer(ctx context.Context, c io.Closer, name string, log logging.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			log.Error(ctx, "failed to close "+name, "error", err)
		}
	}
}
