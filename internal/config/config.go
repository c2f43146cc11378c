package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Render     RenderConfig     `validate:"required"`
	Assets     AssetsConfig
	OrgProfile OrgProfileConfig `mapstructure:"org_profile" validate:"required"`
	Cache      CacheConfig
	Supabase   SupabaseConfig
	Postgres   PostgresConfig
	S3         S3Config
	Sentry     SentryConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
	// RenderRateLimit is the sustained renders per second across the API, 0 disables limiting
	RenderRateLimit float64 `mapstructure:"render_rate_limit" validate:"gte=0"`
	RenderBurst     int     `mapstructure:"render_burst" validate:"gte=0"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// RenderConfig holds the page geometry shared by every document kind.
// All lengths are in PDF points.
type RenderConfig struct {
	PageSize           string  `mapstructure:"page_size" validate:"required"`
	Margin             float64 `validate:"gt=0"`
	BottomThreshold    float64 `mapstructure:"bottom_threshold" validate:"gte=0"`
	RowHeight          float64 `mapstructure:"row_height" validate:"gt=0"`
	FontFamily         string  `mapstructure:"font_family" validate:"required"`
	Currency           string  `validate:"required"`
	PlaceholderOrgName string  `mapstructure:"placeholder_org_name"`
	// BatchConcurrency bounds parallel generations in one batch request
	BatchConcurrency   int     `mapstructure:"batch_concurrency" validate:"gte=1"`
}

type AssetsConfig struct {
	// Dir overrides bundled assets when set; files missing there fall back to the embedded set
	Dir              string
	DefaultWatermark string        `mapstructure:"default_watermark"`
	Opacity          float64       `validate:"gte=0,lte=1"`
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout"`
}

type OrgProfileConfig struct {
	Source types.OrgProfileSource `validate:"required,oneof=supabase postgres static"`
	TTL    time.Duration          `validate:"gt=0"`
	Table  string
	Static StaticOrgProfile
}

// StaticOrgProfile is used when the organization profile lives in config
type StaticOrgProfile struct {
	Name               string
	AddressLine1       string `mapstructure:"address_line1"`
	AddressLine2       string `mapstructure:"address_line2"`
	City               string
	State              string
	PostalCode         string `mapstructure:"postal_code"`
	Country            string
	Phone              string
	Email              string
	Website            string
	TaxID              string `mapstructure:"tax_id"`
	RegistrationNumber string `mapstructure:"registration_number"`
	BankName           string `mapstructure:"bank_name"`
	AccountHolder      string `mapstructure:"account_holder"`
	AccountNumber      string `mapstructure:"account_number"`
	BranchCode         string `mapstructure:"branch_code"`
	UPIID              string `mapstructure:"upi_id"`
}

type CacheConfig struct {
	Enabled bool
}

type SupabaseConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	ServiceKey string `mapstructure:"service_key"`
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type S3Config struct {
	Enabled               bool
	Region                string
	Bucket                string
	KeyPrefix             string `mapstructure:"key_prefix"`
	PresignExpiryDuration string `mapstructure:"presign_expiry_duration"`
	PublicBaseURL         string `mapstructure:"public_base_url"`
}

type SentryConfig struct {
	Enabled     bool
	DSN         string
	Environment string
	SampleRate  float64 `mapstructure:"sample_rate"`
}

func NewConfig() (*Configuration, error) {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	v := viper.New()

	// Modify config paths to ensure config.yaml is found
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/medbill")

	// Set up environment variables support
	v.SetEnvPrefix("MEDBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.render_rate_limit", 0)
	v.SetDefault("server.render_burst", 10)
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("render.page_size", "A4")
	v.SetDefault("render.margin", 36)
	v.SetDefault("render.bottom_threshold", 100)
	v.SetDefault("render.row_height", 18)
	v.SetDefault("render.font_family", "Helvetica")
	v.SetDefault("render.currency", "INR")
	v.SetDefault("render.placeholder_org_name", "Company Name")
	v.SetDefault("render.batch_concurrency", 4)
	v.SetDefault("assets.opacity", 0.08)
	v.SetDefault("assets.fetch_timeout", 10*time.Second)
	v.SetDefault("org_profile.source", types.OrgProfileSourceStatic)
	v.SetDefault("org_profile.ttl", 5*time.Minute)
	v.SetDefault("org_profile.table", "company_profile")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("s3.presign_expiry_duration", "30m")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts, the CLI and tests
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080", RenderBurst: 10},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Render: RenderConfig{
			PageSize:           "A4",
			Margin:             36,
			BottomThreshold:    100,
			RowHeight:          18,
			FontFamily:         "Helvetica",
			Currency:           "INR",
			PlaceholderOrgName: "Company Name",
			BatchConcurrency:   4,
		},
		Assets: AssetsConfig{
			Opacity:      0.08,
			FetchTimeout: 10 * time.Second,
		},
		OrgProfile: OrgProfileConfig{
			Source: types.OrgProfileSourceStatic,
			TTL:    5 * time.Minute,
			Table:  "company_profile",
		},
		Cache: CacheConfig{Enabled: true},
		S3:    S3Config{PresignExpiryDuration: "30m"},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
