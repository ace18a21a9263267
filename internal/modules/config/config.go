package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	apiKeyENV         = "ALPACA_API_KEY"
	secretKeyENV      = "ALPACA_SECRET_KEY"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
)

// Config ...
type Config struct {
	Alpaca struct {
		APIKey    string `yaml:"api_key"`
		SecretKey string `yaml:"secret_key"`
		Paper     bool   `yaml:"paper"`
		// Базовые URL можно переопределить (тесты/прокси),
		// пустые — берём стандартные по флагу Paper.
		TradeURL  string `yaml:"trade_url"`
		DataURL   string `yaml:"data_url"`
		StreamURL string `yaml:"stream_url"`
	} `yaml:"alpaca"`

	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`

	TickerFile string `yaml:"ticker_file"`
	Timezone   string `yaml:"timezone"` // таймзона площадки

	Exit     ExitConfig     `yaml:"exit"`
	Entry    EntryConfig    `yaml:"entry"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// ExitConfig — режимы выхода. Правила независимые, каждое можно выключить,
// но хотя бы одно должно быть включено (проверяется один раз на старте).
type ExitConfig struct {
	EMAExitEnabled bool `yaml:"ema_exit"`
	EMAPeriod      int  `yaml:"ema_period"`

	// 0 выключает календарный выход
	MaxHoldDays int `yaml:"max_days"`

	TrailingStopEnabled bool `yaml:"trailing_stop"`
	// Для шортов параметры жёстче: потенциальный убыток не ограничен,
	// фиксируемся раньше и ведём стоп ближе.
	TrailingActivationPct      float64 `yaml:"trailing_activation_pct"`
	TrailingTrailPct           float64 `yaml:"trailing_trail_pct"`
	ShortTrailingActivationPct float64 `yaml:"short_trailing_activation_pct"`
	ShortTrailingTrailPct      float64 `yaml:"short_trailing_trail_pct"`
}

func (c ExitConfig) CalendarExitEnabled() bool { return c.MaxHoldDays > 0 }

func (c ExitConfig) AnyExitEnabled() bool {
	return c.EMAExitEnabled || c.CalendarExitEnabled() || c.TrailingStopEnabled
}

// EntryConfig — условия входа. Полосы в процентах от SMA50.
type EntryConfig struct {
	LongPullbackMinPct float64 `yaml:"long_pullback_min_pct"`
	LongPullbackMaxPct float64 `yaml:"long_pullback_max_pct"`
	LongStopLossPct    float64 `yaml:"long_stop_loss_pct"`

	ShortRallyMinPct float64 `yaml:"short_rally_min_pct"`
	ShortRallyMaxPct float64 `yaml:"short_rally_max_pct"`
	ShortStopLossPct float64 `yaml:"short_stop_loss_pct"`

	RiskRewardRatio        float64 `yaml:"risk_reward_ratio"`
	VolumeFilterMultiplier float64 `yaml:"volume_filter_multiplier"`
}

// AnalysisConfig — периоды индикаторов и сайзинг.
type AnalysisConfig struct {
	SMATrendPeriod  int `yaml:"sma_trend_period"`
	SMAEntryPeriod  int `yaml:"sma_entry_period"`
	VolumeAvgPeriod int `yaml:"volume_avg_period"`
	LookbackDays    int `yaml:"lookback_days"`
	MinBars         int `yaml:"min_bars"`

	BenchmarkSymbol string `yaml:"benchmark_symbol"`

	BaseRiskPercent float64 `yaml:"base_risk_percent"` // 0.5 => 0.5% депозита на сделку

	// Множители риска по режиму рынка: полный размер в сторону режима,
	// половинный против него.
	BullLongMultiplier  float64 `yaml:"bull_long_multiplier"`
	BullShortMultiplier float64 `yaml:"bull_short_multiplier"`
	BearLongMultiplier  float64 `yaml:"bear_long_multiplier"`
	BearShortMultiplier float64 `yaml:"bear_short_multiplier"`
}

// Default — конфиг с дефолтами и env-переопределениями, без yaml-файла.
// Используется как база в NewConfig и напрямую в одноразовом скринер-CLI.
func Default() Config {
	config := Config{
		TickerFile: getenvDefault("TICKER_FILE", "tickers.txt"),
		Timezone:   "America/New_York",

		Exit: ExitConfig{
			EMAExitEnabled:             boolFromEnv("EMA_EXIT", true),
			EMAPeriod:                  intFromEnv("EMA_PERIOD", 10),
			MaxHoldDays:                intFromEnv("MAX_DAYS", 14),
			TrailingStopEnabled:        boolFromEnv("TRAILING_STOP", true),
			TrailingActivationPct:      floatFromEnv("TRAILING_STOP_ACTIVATION", 3.0),
			TrailingTrailPct:           floatFromEnv("TRAILING_STOP_TRAIL", 5.0),
			ShortTrailingActivationPct: floatFromEnv("SHORT_TRAILING_STOP_ACTIVATION", 2.0),
			ShortTrailingTrailPct:      floatFromEnv("SHORT_TRAILING_STOP_TRAIL", 3.0),
		},
		Entry: EntryConfig{
			LongPullbackMinPct: 0.0,
			LongPullbackMaxPct: 5.0,
			LongStopLossPct:    2.0,
			ShortRallyMinPct:   0.0,
			ShortRallyMaxPct:   5.0,
			ShortStopLossPct:   2.0,

			RiskRewardRatio:        floatFromEnv("RISK_REWARD_RATIO", 1.5),
			VolumeFilterMultiplier: floatFromEnv("VOLUME_FILTER_MULTIPLIER", 1.2),
		},
		Analysis: AnalysisConfig{
			SMATrendPeriod:  200,
			SMAEntryPeriod:  50,
			VolumeAvgPeriod: 20,
			LookbackDays:    365,
			MinBars:         200,
			BenchmarkSymbol: "SPY",

			BaseRiskPercent: floatFromEnv("BASE_RISK_PERCENT", 0.5),

			BullLongMultiplier:  1.0,
			BullShortMultiplier: 0.5,
			BearLongMultiplier:  0.5,
			BearShortMultiplier: 1.0,
		},
	}
	config.Alpaca.Paper = boolFromEnv("ALPACA_PAPER", true)

	if key := os.Getenv(apiKeyENV); key != "" {
		config.Alpaca.APIKey = key
	}
	if secret := os.Getenv(secretKeyENV); secret != "" {
		config.Alpaca.SecretKey = secret
	}
	if token := os.Getenv(tokenTelegramENV); token != "" {
		config.Telegram.Token = token
	}

	return config
}

func NewConfig() (*Config, error) {

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		log.Fatalf("Failed to open config file: %v", err)
	}

	defer func() {
		_ = file.Close()
	}()

	config := Default()
	decoder := yaml.NewDecoder(file)
	err = decoder.Decode(&config)
	if err != nil {
		log.Fatalf("Failed to decode config file: %v", err)
	}

	// секреты из окружения важнее файла
	if key := os.Getenv(apiKeyENV); key != "" {
		config.Alpaca.APIKey = key
	}
	if secret := os.Getenv(secretKeyENV); secret != "" {
		config.Alpaca.SecretKey = secret
	}
	if token := os.Getenv(tokenTelegramENV); token != "" {
		config.Telegram.Token = token
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate — фатальные проверки на старте. Без единого режима выхода
// планировщик запускать нельзя: позиции останутся без контроля.
func (c *Config) Validate() error {
	if !c.Exit.AnyExitEnabled() {
		return fmt.Errorf("at least one exit mode must be enabled (ema_exit, max_days > 0 or trailing_stop)")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("bad timezone %q: %v", c.Timezone, err)
	}
	return nil
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func floatFromEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func boolFromEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if v == "1" || v == "true" || v == "TRUE" {
			return true
		}
		if v == "0" || v == "false" || v == "FALSE" {
			return false
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
