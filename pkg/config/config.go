package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	JWT      JWTConfig
	Postgres PostgresConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Media    MediaConfig
	Mail     MailConfig
	Firebase FirebaseConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret   string
	TTLHours int
}

// PostgresConfig holds the PostgreSQL connection string
type PostgresConfig struct {
	URL string
}

// MongoConfig holds MongoDB configuration
type MongoConfig struct {
	URI      string
	Database string
}

// RedisConfig holds Redis configuration for the session revocation list
type RedisConfig struct {
	URL     string
	Enabled bool
}

// MediaConfig selects and configures the media storage backend
type MediaConfig struct {
	Backend        string // "filesystem" or "s3"
	Root           string // filesystem root
	MaxUploadBytes int64
	S3             S3Config
}

// S3Config holds S3 media storage configuration
type S3Config struct {
	Region    string
	Bucket    string
	Endpoint  string // optional, for S3-compatible stores
	AccessKey string
	SecretKey string
}

// MailConfig holds outbound SMTP configuration
type MailConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
	BaseURL  string // public base URL used in reset links
}

// FirebaseConfig holds federated-login configuration
type FirebaseConfig struct {
	CredentialsPath string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load loads configuration from environment variables and an optional
// config.yaml. A .env file is honoured when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	setDefaults()

	viper.SetEnvPrefix("BREEZY")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/breezy")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetString("server.port"),
		},
		JWT: JWTConfig{
			Secret:   viper.GetString("jwt.secret"),
			TTLHours: viper.GetInt("jwt.ttl_hours"),
		},
		Postgres: PostgresConfig{
			URL: viper.GetString("postgres.url"),
		},
		Mongo: MongoConfig{
			URI:      viper.GetString("mongo.uri"),
			Database: viper.GetString("mongo.database"),
		},
		Redis: RedisConfig{
			URL:     viper.GetString("redis.url"),
			Enabled: viper.GetBool("redis.enabled"),
		},
		Media: MediaConfig{
			Backend:        viper.GetString("media.backend"),
			Root:           viper.GetString("media.root"),
			MaxUploadBytes: viper.GetInt64("media.max_upload_bytes"),
			S3: S3Config{
				Region:    viper.GetString("media.s3.region"),
				Bucket:    viper.GetString("media.s3.bucket"),
				Endpoint:  viper.GetString("media.s3.endpoint"),
				AccessKey: viper.GetString("media.s3.access_key"),
				SecretKey: viper.GetString("media.s3.secret_key"),
			},
		},
		Mail: MailConfig{
			Enabled:  viper.GetBool("mail.enabled"),
			Host:     viper.GetString("mail.host"),
			Port:     viper.GetInt("mail.port"),
			Username: viper.GetString("mail.username"),
			Password: viper.GetString("mail.password"),
			From:     viper.GetString("mail.from"),
			BaseURL:  viper.GetString("mail.base_url"),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: viper.GetString("firebase.credentials_path"),
		},
		Logging: LoggingConfig{
			Level:  viper.GetString("logging.level"),
			Format: viper.GetString("logging.format"),
		},
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("jwt.secret", "supersecretjwtkey")
	viper.SetDefault("jwt.ttl_hours", 72)
	viper.SetDefault("postgres.url", "")
	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "breezy")
	viper.SetDefault("redis.url", "redis://localhost:6379/0")
	viper.SetDefault("redis.enabled", true)
	viper.SetDefault("media.backend", "filesystem")
	viper.SetDefault("media.root", "./uploads")
	viper.SetDefault("media.max_upload_bytes", 10<<20)
	viper.SetDefault("mail.enabled", false)
	viper.SetDefault("mail.port", 587)
	viper.SetDefault("mail.from", "no-reply@breezy.local")
	viper.SetDefault("mail.base_url", "http://localhost:8080")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}
