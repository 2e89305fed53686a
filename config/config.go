package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database    DatabaseConfigs
	Redis       RedisConfigs
	Kafka       KafkaConfigs
	Storage     S3Configs
	Log         LogConfigs
	Metrics     MetricsConfigs
	Retry       RetryConfigs
	Leaderboard LeaderboardConfigs
	Drawing     DrawingConfigs
	Fulfillment FulfillmentConfigs
	Cron        CronConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime Duration
	IOTimeout       Duration
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC&multiStatements=true&timeout=%s&readTimeout=%s&writeTimeout=%s",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
		d.IOTimeout,
		d.IOTimeout,
		d.IOTimeout,
	)
}

type RedisConfigs struct {
	Enable bool
	Addr   string
}

type KafkaConfigs struct {
	Enable   bool
	Addrs    []string
	ClientID string
}

type S3Configs struct {
	Enable      bool
	Endpoint    string
	Region      string
	AccessKey   string
	SecretKey   string
	SSLDisabled bool
	AuditBucket string
}

type LogConfigs struct {
	Level      string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type MetricsConfigs struct {
	Addr string
}

type RetryConfigs struct {
	MaxAttempts int
	Backoff     Duration
}

type LeaderboardConfigs struct {
	Timezone string
	CacheTTL Duration
	Schedule string
}

// Location falls back to UTC when the configured zone cannot be loaded.
func (c LeaderboardConfigs) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}

	return loc
}

type DrawingConfigs struct {
	LifecycleSchedule string
}

// CronConfigs bounds every worker tick.
type CronConfigs struct {
	TickTimeout Duration
}

type FulfillmentConfigs struct {
	Schedule     string
	WarningAfter Duration
	ForfeitAfter Duration
}

// Duration decodes TOML strings such as "15m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	d.Duration = v
	return nil
}

func (d Duration) String() string {
	return d.Duration.String()
}
