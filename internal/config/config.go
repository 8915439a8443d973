package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	Port           string
	Env            string // either prod or dev, will disable https and few other bits
	SessionKey     []byte
	CandidatesURL  string        // webhook returning the candidate feed
	LogEndpointURL string        // remote log collector, shipping is disabled when empty
	SentryDSN      string
	SiteName       string
	FetchTimeout   time.Duration // timeout for a single candidate feed request
	CacheTTL       time.Duration // lifetime of memoized filter results
}

func LoadConfig() (Config, error) {
	// a missing .env is fine, the process environment is used as is
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		return Config{}, fmt.Errorf("PORT cannot be empty")
	}
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "" {
		return Config{}, fmt.Errorf("ENV cannot be empty")
	}
	sessionKeyString := os.Getenv("SESSION_KEY")
	if sessionKeyString == "" {
		return Config{}, fmt.Errorf("SESSION_KEY cannot be empty")
	}
	sessionKeyBytes, err := base64.StdEncoding.DecodeString(sessionKeyString)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to decode session key to bytes")
	}
	candidatesURL := os.Getenv("CANDIDATES_URL")
	if candidatesURL == "" {
		return Config{}, fmt.Errorf("CANDIDATES_URL cannot be empty")
	}
	siteName := os.Getenv("SITE_NAME")
	if siteName == "" {
		siteName = "Portal de Candidatos"
	}
	fetchTimeout, err := durationFromEnv("FETCH_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, err
	}
	cacheTTL, err := durationFromEnv("CACHE_TTL", 10*time.Minute)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:           port,
		Env:            env,
		SessionKey:     sessionKeyBytes,
		CandidatesURL:  candidatesURL,
		LogEndpointURL: os.Getenv("LOG_ENDPOINT_URL"),
		SentryDSN:      os.Getenv("SENTRY_DSN"),
		SiteName:       siteName,
		FetchTimeout:   fetchTimeout,
		CacheTTL:       cacheTTL,
	}, nil
}

func durationFromEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "unable to parse %s", key)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
