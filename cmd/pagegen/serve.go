package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joestump/pagegen/internal/api"
	"github.com/joestump/pagegen/internal/auth"
	"github.com/joestump/pagegen/internal/db"
	"github.com/joestump/pagegen/internal/events"
	"github.com/joestump/pagegen/internal/generate"
	"github.com/joestump/pagegen/internal/handler"
	"github.com/joestump/pagegen/internal/llm"
	"github.com/joestump/pagegen/internal/store"
)

const shutdownTimeout = 15 * time.Second

// services is the wiring shared by serve and batch.
type services struct {
	db        *sqlx.DB
	documents *store.DocumentStore
	meta      *store.MetaStore
	terms     *store.TermStore
	history   *store.HistoryStore
	users     *store.UserStore
	tokens    *auth.SQLTokenStore
	llm       *llm.Client
	events    events.Publisher
	generator *generate.Service
}

// openServices connects to the database, applies migrations and builds the
// generation service.
func openServices(a *app) (*services, error) {
	database, err := db.New(a.cfg.DB.Driver, a.cfg.DB.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(database, a.cfg.DB.Driver); err != nil {
		_ = database.Close()
		return nil, err
	}

	client, err := llm.New(a.cfg)
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	if a.cfg.LLM.APIKey == "" {
		a.log.Warn("no LLM API key configured; rewrite and ai strategies will fail")
	}

	pub, err := events.New(a.cfg.NATS.URL, a.cfg.NATS.Subject, a.log)
	if err != nil {
		_ = database.Close()
		return nil, err
	}

	s := &services{
		db:        database,
		documents: store.NewDocumentStore(database),
		meta:      store.NewMetaStore(database),
		terms:     store.NewTermStore(database),
		history:   store.NewHistoryStore(database),
		users:     store.NewUserStore(database),
		tokens:    auth.NewSQLTokenStore(database),
		llm:       client,
		events:    pub,
	}
	s.generator = generate.New(generate.Deps{
		Documents: s.documents,
		Meta:      s.meta,
		Terms:     s.terms,
		History:   s.history,
		LLM:       client,
		Events:    pub,
		Logger:    a.log,
	}, generate.OptionsFromConfig(a.cfg))
	return s, nil
}

func (s *services) Close() {
	s.events.Close()
	_ = s.db.Close()
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices(a)
			if err != nil {
				return err
			}
			defer svc.Close()

			apiRouter := api.NewAPIRouter(api.Deps{
				BearerAuth: auth.NewBearerTokenMiddleware(svc.tokens, svc.users, a.log),
				Generator:  svc.generator,
				Documents:  svc.documents,
				Meta:       svc.meta,
				Terms:      svc.terms,
				History:    svc.history,
				Tokens:     svc.tokens,
				LLM:        svc.llm,
				Types:      a.cfg.Generation.Types,
				Logger:     a.log,
			})

			router := handler.NewRouter(handler.Deps{
				API:       apiRouter,
				Documents: handler.NewDocumentHandler(svc.documents, svc.meta, a.cfg.Site.BaseURL, a.cfg.Site.Name, a.log),
			})

			srv := &http.Server{
				Addr:              a.cfg.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.log.Info("listening", zap.String("addr", a.cfg.HTTP.Addr), zap.String("llm_provider", svc.llm.Provider()))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			a.log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
