package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/arvarik/fitbit-go/fitbit"
)

type AppConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []fitbit.Scope

	// Code is an authorization code pasted by the user, skipping the
	// callback listener.
	Code string

	// Listen overrides the address the callback or notification server
	// binds to.
	Listen string

	// VerificationCode answers Fitbit's subscriber verification probe.
	VerificationCode string

	Debug   bool
	EnvFile string
}

// Credentials returns the Fitbit client registration described by cfg.
func (c *AppConfig) Credentials() fitbit.Credentials {
	return fitbit.NewCredentials(c.ClientID, c.ClientSecret, c.RedirectURI, c.Scopes...)
}

// Load reads configuration with precedence flag > environment > env file.
// Missing client credentials yield a *fitbit.ConfigurationError.
func Load(name string, args []string) (*AppConfig, error) {
	flags := newFlagSet(name)
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	envFile, _ := flags.GetString("env_file")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load env file %s: %w", envFile, err)
	}

	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}
	bindEnv(v)

	cfg := &AppConfig{
		ClientID:         v.GetString("client_id"),
		ClientSecret:     v.GetString("client_secret"),
		RedirectURI:      v.GetString("redirect_uri"),
		Scopes:           parseScopes(v.GetString("scopes")),
		Code:             v.GetString("code"),
		Listen:           v.GetString("listen"),
		VerificationCode: v.GetString("verification_code"),
		Debug:            v.GetBool("debug"),
		EnvFile:          envFile,
	}
	if err := cfg.Credentials().Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newFlagSet(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)

	// credentials
	flags.String("client_id", "", "Fitbit OAuth2 client id")
	flags.String("client_secret", "", "Fitbit OAuth2 client secret")
	flags.String("redirect_uri", fitbit.DefaultRedirectURI, "Redirect URI registered for the application")
	flags.String("scopes", "", "Space or comma separated scopes (default: all)")

	// flow
	flags.String("code", "", "Authorization code obtained out of band")
	flags.String("listen", "", "Listen address for the callback or notification server")
	flags.String("verification_code", "", "Subscriber verification code")

	flags.Bool("debug", false, "Enable debug logging and raw responses")
	flags.String("env_file", ".env", "Optional dotenv file")

	return flags
}

func bindEnv(v *viper.Viper) {
	// Explicit mapping; the lowercase names are kept for older setups.
	_ = v.BindEnv("client_id", "FITBIT_CLIENT_ID", "fitbit_client_id")
	_ = v.BindEnv("client_secret", "FITBIT_CLIENT_SECRET", "fitbit_client_secret")
	_ = v.BindEnv("redirect_uri", "FITBIT_REDIRECT_URI")
	_ = v.BindEnv("scopes", "FITBIT_SCOPES")
	_ = v.BindEnv("code", "FITBIT_AUTH_CODE")
	_ = v.BindEnv("listen", "FITBIT_LISTEN")
	_ = v.BindEnv("verification_code", "FITBIT_VERIFICATION_CODE")
	_ = v.BindEnv("debug", "FITBIT_DEBUG")
}

func parseScopes(raw string) []fitbit.Scope {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(fields) == 0 {
		return nil
	}
	scopes := make([]fitbit.Scope, len(fields))
	for i, f := range fields {
		scopes[i] = fitbit.Scope(f)
	}
	return scopes
}
