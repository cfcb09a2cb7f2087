package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"github.com/arvarik/fitbit-go/config"
	"github.com/arvarik/fitbit-go/fitbit"
)

const (
	notificationPath = "/fitbit/notifications"
	defaultListen    = ":8080"
	workerCount      = 5
	queueSize        = 100
)

// job is one changed collection for one user and day.
type job struct {
	collection string
	date       string
}

// This example receives Fitbit subscriber notifications and pulls the
// day's data for each changed collection through a bounded worker pool.
func main() {
	cfg, err := config.Load("fitbit-example", os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if cfg.Code == "" {
		logger.Error("an authorization code is required; run cmd/auth first or pass --code")
		os.Exit(2)
	}

	tokens, err := fitbit.NewTokenManager(cfg.Credentials(), fitbit.WithTokenLogger(logger))
	if err != nil {
		logger.Error("invalid credentials", "error", err)
		os.Exit(2)
	}
	if _, err := tokens.ExchangeAuthorizationCode(context.Background(), cfg.Code); err != nil {
		logger.Error("authorization code exchange failed", "error", err)
		os.Exit(1)
	}

	client := fitbit.NewClient(tokens,
		fitbit.WithLogger(logger),
		fitbit.WithDebug(cfg.Debug),
	)

	jobQueue := make(chan job, queueSize)
	for i := 0; i < workerCount; i++ {
		go worker(logger, client, tokens, jobQueue)
	}

	addr := cfg.Listen
	if addr == "" {
		addr = defaultListen
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           newRouter(logger, cfg.ClientSecret, cfg.VerificationCode, jobQueue),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("notification listener started", "addr", addr, "path", notificationPath)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("listener stopped", "error", err)
		os.Exit(1)
	}
}

func newRouter(logger *slog.Logger, clientSecret, verificationCode string, jobQueue chan<- job) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc(notificationPath, verifyHandler(verificationCode)).Methods(http.MethodGet)
	r.HandleFunc(notificationPath, notificationHandler(logger, clientSecret, jobQueue)).Methods(http.MethodPost)
	return r
}

func verifyHandler(code string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if fitbit.VerifySubscriber(r, code) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}
}

func notificationHandler(logger *slog.Logger, clientSecret string, jobQueue chan<- job) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notes, err := fitbit.ParseNotifications(r, clientSecret)
		if err != nil {
			// Fitbit expects 404 for a notification that fails verification.
			logger.Warn("rejected notification", "error", err)
			w.WriteHeader(http.StatusNotFound)
			return
		}

		// Acknowledge quickly; Fitbit disables subscribers that respond slowly.
		w.WriteHeader(http.StatusNoContent)

		for _, n := range notes {
			select {
			case jobQueue <- job{collection: n.CollectionType, date: n.Date}:
			default:
				logger.Warn("worker pool full, dropping notification",
					"collection", n.CollectionType, "date", n.Date)
			}
		}
	}
}

func worker(logger *slog.Logger, client *fitbit.Client, tokens *fitbit.TokenManager, jobQueue <-chan job) {
	for j := range jobQueue {
		process(logger, client, tokens, j)
	}
}

// process fetches the data behind a notification. A 401 triggers one refresh
// and one retry.
func process(logger *slog.Logger, client *fitbit.Client, tokens *fitbit.TokenManager, j job) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := fetch(ctx, client, j)
	if err == nil && resp.StatusCode == http.StatusUnauthorized && tokens != nil {
		if _, err = tokens.ExchangeRefreshToken(ctx); err == nil {
			resp, err = fetch(ctx, client, j)
		}
	}
	if err != nil {
		logger.Error("fetch failed", "collection", j.collection, "date", j.date, "error", err)
		return
	}
	if err := resp.Err(); err != nil {
		logger.Error("fetch rejected", "collection", j.collection, "date", j.date, "error", err)
		return
	}

	logger.Info("notification processed",
		"collection", j.collection,
		"date", j.date,
		"request_id", resp.RequestID,
		"bytes", len(resp.Body),
	)
}

func fetch(ctx context.Context, client *fitbit.Client, j job) (*fitbit.Response, error) {
	switch j.collection {
	case fitbit.CollectionActivities:
		return client.Activity.Summary(ctx, j.date)
	case fitbit.CollectionBody:
		return client.Body.Logs(ctx, fitbit.BodyWeight, j.date, "")
	case fitbit.CollectionFoods:
		return client.Food.Logs(ctx, j.date)
	case fitbit.CollectionSleep:
		return client.Sleep.ByDate(ctx, j.date)
	default:
		return nil, fmt.Errorf("unsupported collection %q", j.collection)
	}
}
