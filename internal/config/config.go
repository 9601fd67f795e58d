package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Portal       Portal       `mapstructure:",squash"`
	WebAnalytics WebAnalytics `mapstructure:",squash"`
	Advertising  Advertising  `mapstructure:",squash"`
	Social       Social       `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	Panel        Panel        `mapstructure:",squash"`
	MappingSync  MappingSync  `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	Enabled  bool   `mapstructure:"database_enabled"`
}

// Portal é o serviço de identidade do portal do cliente: resolve o token de
// sessão opaco para a empresa (tenant) dona da sessão
type Portal struct {
	URL    string `mapstructure:"portal_url"`
	APIKey string `mapstructure:"portal_api_key"`
}

type WebAnalytics struct {
	URL         string `mapstructure:"web_analytics_url"`
	AccessToken string `mapstructure:"web_analytics_access_token"`
}

type Advertising struct {
	URL             string `mapstructure:"advertising_url"`
	AccessToken     string `mapstructure:"advertising_access_token"`
	DeveloperToken  string `mapstructure:"advertising_developer_token"`
	LoginCustomerID string `mapstructure:"advertising_login_customer_id"`
}

type Social struct {
	URL       string `mapstructure:"social_url"`
	UserID    string `mapstructure:"social_user_id"`
	UserToken string `mapstructure:"social_user_token"`
	PostLimit int    `mapstructure:"social_post_limit"`
}

// Auth guarda o segredo compartilhado com o portal, usado apenas no fallback
// de resolução de tenant por token JWT
type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Panel struct {
	TimeoutSeconds int `mapstructure:"panel_timeout_seconds"`
}

type MappingSync struct {
	CronSchedule string `mapstructure:"mapping_sync_cron"`
	Enabled      bool   `mapstructure:"mapping_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/dashboard")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_ENABLED", false)

	viper.SetDefault("PORTAL_URL", "")
	viper.SetDefault("PORTAL_API_KEY", "")

	viper.SetDefault("WEB_ANALYTICS_URL", "https://analyticsdata.googleapis.com/v1beta")
	viper.SetDefault("WEB_ANALYTICS_ACCESS_TOKEN", "")

	viper.SetDefault("ADVERTISING_URL", "https://googleads.googleapis.com/v17")
	viper.SetDefault("ADVERTISING_ACCESS_TOKEN", "")
	viper.SetDefault("ADVERTISING_DEVELOPER_TOKEN", "")
	viper.SetDefault("ADVERTISING_LOGIN_CUSTOMER_ID", "")

	viper.SetDefault("SOCIAL_URL", "https://app.metricool.com/api")
	viper.SetDefault("SOCIAL_USER_ID", "")
	viper.SetDefault("SOCIAL_USER_TOKEN", "")
	viper.SetDefault("SOCIAL_POST_LIMIT", 20)

	viper.SetDefault("AUTH_SECRET", "")

	// Timeout imposto pelo chamador em volta da chamada inteira da fachada
	viper.SetDefault("PANEL_TIMEOUT_SECONDS", 30)

	viper.SetDefault("MAPPING_SYNC_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("MAPPING_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
