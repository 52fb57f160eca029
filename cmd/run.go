package cmd

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/kotoba/internal/app"
	"github.com/abhisek/kotoba/internal/appstate"
	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/config"
	"github.com/abhisek/kotoba/internal/llm"
	"github.com/abhisek/kotoba/internal/questiongen"
	"github.com/abhisek/kotoba/internal/screens/setup"
	"github.com/abhisek/kotoba/internal/store"
)

// env is what every command opens first: configuration, a logger and the
// database.
type env struct {
	config *viper.Viper
	log    *logrus.Logger
	db     *store.Store
	dbPath string
}

func openEnv(cmd *cobra.Command) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	v, err := config.New(cfgPath)
	if err != nil {
		return nil, err
	}
	log := config.NewLogger(v)

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &env{config: v, log: log, db: db, dbPath: dbPath}, nil
}

func (e *env) Close() {
	if err := e.db.Close(); err != nil {
		e.log.WithError(err).Warn("failed to close database")
	}
}

// appState opens the application state over the database and loads the
// persisted settings, history and favorites.
func (e *env) appState(ctx context.Context) *appstate.Store {
	st := appstate.New(appstate.Options{
		KV:           e.db.KV(),
		Log:          e.log,
		ToastDelay:   seconds(e.config, "toast.seconds"),
		TryoutBudget: seconds(e.config, "tryout.seconds"),
	})
	st.Load(ctx)
	return st
}

func seconds(v *viper.Viper, key string) time.Duration {
	return time.Duration(v.GetInt(key)) * time.Second
}

func (e *env) providers() *questiongen.Providers {
	return questiongen.NewProviders(llm.ConfigFromViper(e.config), questiongen.DefaultConfig(), e.db.EventRepo(), e.log)
}

func (e *env) source() questiongen.Source {
	src, err := questiongen.ParseSource(e.config.GetString("generation.source"))
	if err != nil {
		e.log.WithError(err).Warn("unknown generation.source, using the local bank")
		return questiongen.SourceLocal
	}
	return src
}

func (e *env) starter(st *appstate.Store, providers *questiongen.Providers) *setup.Starter {
	return &setup.Starter{
		Store:         st,
		Bank:          bank.Default(bank.NewRand()),
		Providers:     providers,
		Rand:          bank.NewRand(),
		Log:           e.log,
		PracticeCount: e.config.GetInt("practice.count"),
		TryoutCount:   e.config.GetInt("tryout.count"),
		Source:        e.source(),
	}
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	return launch(cmd, nil)
}

// launch runs the TUI. start, when set, picks the screen shown above home.
func launch(cmd *cobra.Command, start func(*setup.Starter) tea.Cmd) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	logFile, err := config.LogToFile(e.log, e.dbPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx := cmd.Context()
	st := e.appState(ctx)
	defer st.Close()

	providers := e.providers()
	starter := e.starter(st, providers)

	opts := app.Options{
		Store:     st,
		Starter:   starter,
		Providers: providers,
		Log:       e.log,
	}
	opts.SkipSplash, _ = cmd.Flags().GetBool("no-splash")
	if start != nil {
		opts.Start = start(starter)
	}
	return app.Run(ctx, opts)
}
