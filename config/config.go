package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env      string `env:"ENV" envDefault:"local"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	NodeID   int64  `env:"NODE_ID" envDefault:"1"`

	Database           DatabaseConfigs    `envPrefix:"DB_"`
	ApiServer          APIServerConfigs   `envPrefix:"API_"`
	NotificationServer ServerConfigs      `envPrefix:"NOTIFICATION_"`
	Auth               AuthConfigs        `envPrefix:"AUTH_"`
	Session            SessionConfigs     `envPrefix:"SESSION_"`
	Storage            S3Configs          `envPrefix:"STORAGE_"`
	File               FileConfigs        `envPrefix:"FILE_"`
	Redis              RedisConfigs       `envPrefix:"REDIS_"`
	Kafka              KafkaConfigs       `envPrefix:"KAFKA_"`
	ScyllaDB           ScyllaDBConfigs    `envPrefix:"SCYLLA_"`
	SearchIndex        SearchIndexConfigs `envPrefix:"SEARCH_"`
	Email              EmailConfigs       `envPrefix:"EMAIL_"`
	University         UniversityConfigs  `envPrefix:"UNIVERSITY_"`
	Transaction        TransactionConfigs `envPrefix:"TX_"`
	Cron               CronConfigs        `envPrefix:"CRON_"`
}

type DatabaseConfigs struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"3306"`
	Database string `env:"DATABASE" envDefault:"campusboard"`
	User     string `env:"USER" envDefault:"mysql"`
	Password string `env:"PASSWORD" envDefault:"mysql"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"error"`
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host         string   `env:"HOST" envDefault:"0.0.0.0"`
	Port         string   `env:"PORT" envDefault:"8080"`
	AllowOrigins []string `env:"ALLOW_ORIGINS" envSeparator:"," envDefault:"*"`
}

func (c ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type APIServerConfigs struct {
	ServerConfigs

	MaxLimit     int `env:"MAX_LIMIT" envDefault:"50"`
	DefaultLimit int `env:"DEFAULT_LIMIT" envDefault:"20"`
}

type AuthConfigs struct {
	TokenSecret          string        `env:"TOKEN_SECRET" envDefault:"change-me"`
	AccessToken          TokenConfigs  `envPrefix:"ACCESS_TOKEN_"`
	VerificationTokenTTL time.Duration `env:"VERIFICATION_TOKEN_TTL" envDefault:"24h"`
}

type TokenConfigs struct {
	Name       string        `env:"NAME" envDefault:"access_token"`
	Expiration time.Duration `env:"EXPIRATION" envDefault:"72h"`
}

type SessionConfigs struct {
	Secret string `env:"SECRET" envDefault:"change-me"`
	Name   string `env:"NAME" envDefault:"campusboard_session"`
}

type S3Configs struct {
	Region         string `env:"REGION" envDefault:"auto"`
	Endpoint       string `env:"ENDPOINT"`
	PublicEndpoint string `env:"PUBLIC_ENDPOINT"`
	AccessKey      string `env:"ACCESS_KEY"`
	SecretKey      string `env:"SECRET_KEY"`
	Bucket         string `env:"BUCKET" envDefault:"campusboard"`
	SSLDisabled    bool   `env:"SSL_DISABLED" envDefault:"false"`
}

type FileConfigs struct {
	MaxSize    int64 `env:"MAX_SIZE" envDefault:"10485760"`
	AvatarSize int   `env:"AVATAR_SIZE" envDefault:"256"`
}

type RedisConfigs struct {
	Addr string `env:"ADDR" envDefault:"localhost:6379"`
}

type KafkaConfigs struct {
	Addr              string `env:"ADDR" envDefault:"localhost:9092"`
	NotificationTopic string `env:"NOTIFICATION_TOPIC" envDefault:"notification"`
	ConsumerGroup     string `env:"CONSUMER_GROUP" envDefault:"notification"`
}

type ScyllaDBConfigs struct {
	Addr     string `env:"ADDR" envDefault:"localhost:9042"`
	KeySpace string `env:"KEYSPACE" envDefault:"campusboard"`
}

type SearchIndexConfigs struct {
	// IndexDir is where bleve keeps its indexes. An empty value keeps them in
	// memory.
	IndexDir string `env:"INDEX_DIR"`
}

type EmailConfigs struct {
	SendgridAPIKey string `env:"SENDGRID_API_KEY"`
	FromName       string `env:"FROM_NAME" envDefault:"CampusBoard"`
	FromAddress    string `env:"FROM_ADDRESS" envDefault:"no-reply@campusboard.app"`
	VerifyURL      string `env:"VERIFY_URL" envDefault:"http://localhost:3000/verify"`
}

type UniversityConfigs struct {
	DirectoryFile string `env:"DIRECTORY_FILE" envDefault:"universities.toml"`

	// Directory is filled from DirectoryFile after parsing the environment.
	Directory UniversityDirectory
}

type TransactionConfigs struct {
	MaxRetries      uint          `env:"MAX_RETRIES" envDefault:"5"`
	InitialInterval time.Duration `env:"INITIAL_INTERVAL" envDefault:"20ms"`
}

type CronConfigs struct {
	LiftSuspensionInterval time.Duration `env:"LIFT_SUSPENSION_INTERVAL" envDefault:"1h"`
}
