package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/mux"

	"github.com/arvarik/fitbit-go/config"
	"github.com/arvarik/fitbit-go/fitbit"
)

// exchanger is the part of *fitbit.TokenManager the callback needs.
type exchanger interface {
	ExchangeAuthorizationCode(ctx context.Context, code string) (fitbit.Session, error)
}

type callbackResult struct {
	session fitbit.Session
	err     error
}

func main() {
	cfg, err := config.Load("fitbit-auth", os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger := newLogger(cfg.Debug)

	tokens, err := fitbit.NewTokenManager(cfg.Credentials(), fitbit.WithTokenLogger(logger))
	if err != nil {
		logger.Error("invalid credentials", "error", err)
		os.Exit(2)
	}

	fmt.Println("=== Fitbit OAuth 2.0 Token Generator ===")
	fmt.Println("\n1. Ensure this Redirect URI is registered for your application:")
	fmt.Printf("   %s\n", cfg.RedirectURI)
	fmt.Println("\n2. Open this URL in your browser to authorize:")
	fmt.Printf("\n   %s\n\n", tokens.AuthorizationURL())

	ctx := context.Background()

	var session fitbit.Session
	if cfg.Code != "" {
		session, err = tokens.ExchangeAuthorizationCode(ctx, cfg.Code)
	} else {
		session, err = waitForCallback(ctx, logger, tokens, cfg)
	}
	if err != nil {
		logger.Error("authorization failed", "error", err)
		os.Exit(1)
	}

	client := fitbit.NewClient(tokens, fitbit.WithLogger(logger), fitbit.WithDebug(false))
	profile, err := client.User.GetProfile(ctx)
	if err != nil {
		logger.Warn("could not fetch profile", "error", err)
	}

	printSession(session, profile)
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// waitForCallback serves the redirect URI until one authorization attempt
// completes, successfully or not.
func waitForCallback(ctx context.Context, logger *slog.Logger, tokens exchanger, cfg *config.AppConfig) (fitbit.Session, error) {
	u, err := url.Parse(cfg.RedirectURI)
	if err != nil {
		return fitbit.Session{}, fmt.Errorf("parse redirect uri: %w", err)
	}

	addr := cfg.Listen
	if addr == "" {
		addr = listenAddr(u)
	}

	results := make(chan callbackResult, 1)
	server := &http.Server{
		Addr:              addr,
		Handler:           newCallbackRouter(logger, tokens, u.Path, results),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			results <- callbackResult{err: fmt.Errorf("callback server: %w", err)}
		}
	}()

	logger.Info("waiting for authorization callback", "addr", addr, "path", u.Path)
	res := <-results

	shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)

	return res.session, res.err
}

func listenAddr(u *url.URL) string {
	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	return net.JoinHostPort("", port)
}

func newCallbackRouter(logger *slog.Logger, tokens exchanger, path string, results chan<- callbackResult) http.Handler {
	if path == "" {
		path = "/"
	}

	r := mux.NewRouter()
	r.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()

		// Fitbit reports a denied consent as error/error_description.
		if errParam := q.Get("error"); errParam != "" {
			msg := fmt.Sprintf("OAuth error: %s\nDescription: %s", errParam, q.Get("error_description"))
			http.Error(w, msg, http.StatusBadRequest)
			deliver(results, callbackResult{err: errors.New(msg)})
			return
		}

		code := q.Get("code")
		if code == "" {
			http.Error(w, "Failed to get auth code from request", http.StatusBadRequest)
			return
		}

		logger.Info("received authorization code, exchanging for tokens")
		session, err := tokens.ExchangeAuthorizationCode(req.Context(), code)
		if err != nil {
			http.Error(w, fmt.Sprintf("Token exchange error: %v", err), http.StatusBadGateway)
			deliver(results, callbackResult{err: err})
			return
		}

		fmt.Fprint(w, "Success! You can close this window and check your terminal.")
		deliver(results, callbackResult{session: session})
	}).Methods(http.MethodGet)

	return r
}

// deliver never blocks: only the first result is consumed.
func deliver(results chan<- callbackResult, res callbackResult) {
	select {
	case results <- res:
	default:
	}
}

func printSession(session fitbit.Session, profile *fitbit.Profile) {
	fmt.Println("\n=== SUCCESS ===")
	if profile != nil {
		fmt.Printf("\nAuthorized as %s (%s)\n", profile.DisplayName, session.UserID)
	} else {
		fmt.Printf("\nAuthorized user %s\n", session.UserID)
	}
	fmt.Println("\nTokens are not stored; export them if another tool needs them:")
	fmt.Printf("\nexport FITBIT_ACCESS_TOKEN=\"%s\"\n", session.AccessToken)
	fmt.Printf("export FITBIT_REFRESH_TOKEN=\"%s\"\n", session.RefreshToken)
}
