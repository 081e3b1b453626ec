package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Kakao    KakaoConfig
	SMS      SMSConfig
	Twilio   TwilioConfig
	Matching MatchingConfig
}

type ServerConfig struct {
	Address string
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     int
}

type RedisConfig struct {
	URL string
}

type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
}

type KakaoConfig struct {
	RESTKey      string `mapstructure:"rest_key"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURI  string `mapstructure:"redirect_uri"`
}

// SMSConfig 의 Provider 는 twilio 또는 local 이다.
type SMSConfig struct {
	Provider        string
	CodeTTLSeconds  int `mapstructure:"code_ttl_seconds"`
	CooldownSeconds int `mapstructure:"cooldown_seconds"`
}

type TwilioConfig struct {
	AccountSID       string `mapstructure:"account_sid"`
	AuthToken        string `mapstructure:"auth_token"`
	VerifyServiceSID string `mapstructure:"verify_service_sid"`
}

type MatchingConfig struct {
	DailyRecommendations int `mapstructure:"daily_recommendations"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./pkg/config")

	// 비밀 값은 환경 변수로 덮어쓸 수 있다 (예: KAKAO_CLIENT_SECRET)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("sms.provider", "local")
	viper.SetDefault("sms.code_ttl_seconds", 300)
	viper.SetDefault("sms.cooldown_seconds", 60)
	viper.SetDefault("auth.token_ttl_hours", 240)
	viper.SetDefault("matching.daily_recommendations", 3)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
