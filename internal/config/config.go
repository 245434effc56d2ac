package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Coin maps one asset's ticker to the identifiers each provider expects.
type Coin struct {
	Ticker  string `yaml:"ticker"`   // price history, e.g. "BTC-USD"
	Name    string `yaml:"name"`     // display name / news query, e.g. "Bitcoin"
	Slug    string `yaml:"slug"`     // on-chain provider slug, e.g. "bitcoin"
	GeckoID string `yaml:"gecko_id"` // fundamentals provider id
	Symbol  string `yaml:"symbol"`   // derivatives symbol, e.g. "BTC"
}

// Config holds all application configuration.
type Config struct {
	Coins     []Coin `yaml:"coins"`
	Providers struct {
		CoinGlassKey  string `yaml:"coinglass_key"`
		SantimentKey  string `yaml:"santiment_key"`
		LunarCrushKey string `yaml:"lunarcrush_key"`
		CoinGeckoKey  string `yaml:"coingecko_key"`
		NewsAPIKey    string `yaml:"newsapi_key"`
	} `yaml:"providers"`
	LLM struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		Model   string `yaml:"model"`
		RPM     int    `yaml:"rpm"`
		Burst   int    `yaml:"burst"`
	} `yaml:"llm"`
	Database struct {
		URL        string `yaml:"url"`
		Host       string `yaml:"host"`
		Port       int    `yaml:"port"`
		User       string `yaml:"user"`
		Password   string `yaml:"password"`
		Name       string `yaml:"name"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("COINGLASS_API_KEY"); v != "" {
		cfg.Providers.CoinGlassKey = v
	}
	if v := os.Getenv("SANTIMENT_API_KEY"); v != "" {
		cfg.Providers.SantimentKey = v
	}
	if v := os.Getenv("LUNARCRUSH_API_KEY"); v != "" {
		cfg.Providers.LunarCrushKey = v
	}
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		cfg.Providers.CoinGeckoKey = v
	}
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		cfg.Providers.NewsAPIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = p
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if len(cfg.Coins) == 0 {
		cfg.Coins = []Coin{
			{Ticker: "BTC-USD", Name: "Bitcoin", Slug: "bitcoin", GeckoID: "bitcoin", Symbol: "BTC"},
			{Ticker: "ETH-USD", Name: "Ethereum", Slug: "ethereum", GeckoID: "ethereum", Symbol: "ETH"},
			{Ticker: "XRP-USD", Name: "XRP", Slug: "xrp", GeckoID: "ripple", Symbol: "XRP"},
		}
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4-turbo"
	}
	if cfg.LLM.RPM == 0 {
		cfg.LLM.RPM = 30
	}
	if cfg.LLM.Burst == 0 {
		cfg.LLM.Burst = 2
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 6 * * *"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Database.URL == "" && cfg.Database.Host == "" && cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/cryptopulse.db"
	}

	return cfg, nil
}

// UsePostgres reports whether a postgres connection is configured.
func (c *Config) UsePostgres() bool {
	return c.Database.URL != "" || c.Database.Host != ""
}

// PostgresDSN builds the connection string, preferring the single URL over
// discrete parameters.
func (c *Config) PostgresDSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.Name)
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if len(c.Coins) == 0 {
		return fmt.Errorf("at least one coin is required")
	}
	for _, coin := range c.Coins {
		if coin.Ticker == "" || coin.Name == "" {
			return fmt.Errorf("coin entries require ticker and name")
		}
	}
	if c.Database.Host != "" {
		if c.Database.Port == 0 || c.Database.User == "" || c.Database.Password == "" || c.Database.Name == "" {
			return fmt.Errorf("incomplete database config: host/port/user/password/name are all required")
		}
	}
	if !c.UsePostgres() && c.Database.SQLitePath == "" {
		return fmt.Errorf("no database configured: set database.url, discrete db params, or sqlite_path")
	}
	return nil
}
