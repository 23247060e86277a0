package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Repositories struct {
		Postgres struct {
			Host     string `mapstructure:"host"`
			Password string `mapstructure:"password"`
			Port     string `mapstructure:"port"`
			Username string `mapstructure:"username"`
			DB       string `mapstructure:"db"`
			SSLMode  string `mapstructure:"sslmode"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	JWT JWTConfig `mapstructure:"jwt"`
	// Legacy holds the symmetric secret the previous system used to
	// encrypt stored passwords. Only needed while un-migrated accounts
	// remain; see auth package.
	Legacy struct {
		PasswordSecret string `mapstructure:"passwordSecret"`
	} `mapstructure:"legacy"`
	S3 S3Config `mapstructure:"s3"`
}

// JWTConfig configures token issuance and verification.
type JWTConfig struct {
	SecretKey string        `mapstructure:"secretKey"`
	Issuer    string        `mapstructure:"issuer"`
	Audience  string        `mapstructure:"audience"`
	TokenTTL  time.Duration `mapstructure:"tokenTTL"`
}

// S3Config configures the object store used for profile images.
type S3Config struct {
	Region    string        `mapstructure:"region"`
	Bucket    string        `mapstructure:"bucket"`
	Endpoint  string        `mapstructure:"endpoint"`
	AccessKey string        `mapstructure:"accessKey"`
	SecretKey string        `mapstructure:"secretKey"`
	UploadTTL time.Duration `mapstructure:"uploadTTL"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Secrets come from the environment, never from the YAML file.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("jwt.secretKey", "JWT_SECRET")
	_ = v.BindEnv("legacy.passwordSecret", "LEGACY_PASSWORD_SECRET")
	_ = v.BindEnv("s3.accessKey", "S3_ACCESS_KEY")
	_ = v.BindEnv("s3.secretKey", "S3_SECRET_KEY")
	_ = v.BindEnv("repositories.postgres.password", "POSTGRES_PASSWORD")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	return config, nil
}
