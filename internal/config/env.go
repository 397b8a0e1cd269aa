package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AlexZinkM/multichain-wallet/internal/crypto"
	"github.com/AlexZinkM/multichain-wallet/internal/network"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Wallet passwords are never read from the environment; they come with each request or from PromptForPassword.
type Config struct {
	Port    string `envconfig:"PORT" default:"8080"`
	DataDir string `envconfig:"WALLET_DATA_DIR" default:"./data"`
	ScryptN int    `envconfig:"WALLET_SCRYPT_N" default:"262144"`

	PollInterval    time.Duration `envconfig:"POLL_INTERVAL" default:"15s"`
	PollConcurrency int           `envconfig:"POLL_CONCURRENCY" default:"4"`

	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile       string `envconfig:"LOG_FILE"`
	LogMaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"50"`
	LogMaxAgeDays int    `envconfig:"LOG_MAX_AGE_DAYS" default:"14"`

	EthereumRPCURL  string `envconfig:"ETHEREUM_RPC_URL"`
	BinanceRPCURL   string `envconfig:"BINANCE_RPC_URL"`
	PolygonRPCURL   string `envconfig:"POLYGON_RPC_URL"`
	AvalancheRPCURL string `envconfig:"AVALANCHE_RPC_URL"`
	SolanaRPCURL    string `envconfig:"SOLANA_RPC_URL"`

	CoinGeckoURL string `envconfig:"COINGECKO_URL" default:"https://api.coingecko.com/api/v3"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads .env (if present) and then configuration from environment variables.
func Init() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads configuration from environment variables only
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if c.ScryptN < 2 || c.ScryptN&(c.ScryptN-1) != 0 || c.ScryptN > crypto.MaxScryptN {
		return nil, fmt.Errorf("WALLET_SCRYPT_N must be a power of two up to %d, got %d", crypto.MaxScryptN, c.ScryptN)
	}
	if c.PollInterval <= 0 {
		return nil, fmt.Errorf("POLL_INTERVAL must be positive, got %s", c.PollInterval)
	}
	return c, nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// Endpoints returns the RPC overrides that are set, keyed by network id
func (c *Config) Endpoints() map[string]string {
	out := make(map[string]string)
	for id, url := range map[string]string{
		network.Ethereum:  c.EthereumRPCURL,
		network.Binance:   c.BinanceRPCURL,
		network.Polygon:   c.PolygonRPCURL,
		network.Avalanche: c.AvalancheRPCURL,
		network.Solana:    c.SolanaRPCURL,
	} {
		if url = strings.TrimSpace(url); url != "" {
			out[id] = url
		}
	}
	return out
}

// PromptForPassword prompts for a password in the terminal without echoing it.
// Caller must zero the returned slice after use.
func PromptForPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the command interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	clear(raw)
	return out, nil
}
