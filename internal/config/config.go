package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultPort      = "8080"
	minSecretKeySize = 32
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Port     string
	Location *time.Location

	DBDriver    string
	DatabaseDSN string
	SecretKey   string
	// MockMode is set when the database location or the secret key is missing.
	MockMode bool

	CookieSecure bool
	PublicURL    string
	DevTools     bool

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	GoogleClientID     string
	GoogleClientSecret string
}

// LoadDotEnv copies variables from the given files into the environment
// without overriding values that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

func Load() (Config, error) {
	port, err := ResolvePort()
	if err != nil {
		return Config{}, err
	}
	driver, err := ResolveDBDriver()
	if err != nil {
		return Config{}, err
	}

	config := Config{
		Port:               port,
		Location:           ResolveLocation(getEnv("TZ", "UTC")),
		DBDriver:           driver,
		DatabaseDSN:        ResolveDatabaseDSN(driver),
		CookieSecure:       parseBool(os.Getenv("COOKIE_SECURE")),
		PublicURL:          ResolvePublicURL(port),
		DevTools:           parseBool(os.Getenv("DEV_TOOLS")),
		OpenAIAPIKey:       strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:      strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		OpenAIModel:        strings.TrimSpace(os.Getenv("OPENAI_MODEL")),
		GoogleClientID:     strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_ID")),
		GoogleClientSecret: strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_SECRET")),
	}

	if strings.TrimSpace(os.Getenv("SECRET_KEY")) != "" {
		secretKey, err := ResolveSecretKey()
		if err != nil {
			return Config{}, err
		}
		config.SecretKey = secretKey
	}
	config.MockMode = config.DatabaseDSN == "" || config.SecretKey == ""
	return config, nil
}

// GoogleSignInEnabled reports whether both OAuth client credentials are set.
func (config Config) GoogleSignInEnabled() bool {
	return config.GoogleClientID != "" && config.GoogleClientSecret != ""
}

func ResolveSecretKey() (string, error) {
	secretKey := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secretKey == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secretKey)]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secretKey) < minSecretKeySize {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeySize)
	}
	return secretKey, nil
}

func ResolvePort() (string, error) {
	raw := strings.TrimSpace(getEnv("PORT", defaultPort))
	port, err := strconv.Atoi(raw)
	if err != nil {
		return "", fmt.Errorf("invalid PORT %q: %w", raw, err)
	}
	if port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q: must be between 1 and 65535", raw)
	}
	return strconv.Itoa(port), nil
}

func ResolveDBDriver() (string, error) {
	driver := strings.ToLower(strings.TrimSpace(getEnv("DB_DRIVER", DriverSQLite)))
	switch driver {
	case DriverSQLite, DriverPostgres:
		return driver, nil
	default:
		return "", fmt.Errorf("invalid DB_DRIVER %q: expected %s or %s", driver, DriverSQLite, DriverPostgres)
	}
}

// ResolveDatabaseDSN returns DB_PATH for sqlite and DATABASE_URL for postgres.
func ResolveDatabaseDSN(driver string) string {
	if driver == DriverPostgres {
		return strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}
	return strings.TrimSpace(os.Getenv("DB_PATH"))
}

func ResolvePublicURL(port string) string {
	publicURL := strings.TrimRight(strings.TrimSpace(os.Getenv("PUBLIC_URL")), "/")
	if publicURL == "" {
		return "http://localhost:" + port
	}
	return publicURL
}

func ResolveLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func parseBool(raw string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && value
}
