package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

func Default() Configs {
	return Configs{
		Env: "local",
		Database: DatabaseConfigs{
			Host:            "localhost",
			Port:            "3306",
			Database:        "fittrack",
			User:            "root",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: Duration{time.Hour},
			IOTimeout:       Duration{5 * time.Second},
		},
		Redis: RedisConfigs{Addr: "localhost:6379"},
		Kafka: KafkaConfigs{ClientID: "fittrack"},
		Storage: S3Configs{
			Region:      "us-east-1",
			AuditBucket: "fittrack-drawing-audit",
		},
		Log: LogConfigs{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
		Metrics: MetricsConfigs{Addr: ":9100"},
		Retry: RetryConfigs{
			MaxAttempts: 3,
			Backoff:     Duration{20 * time.Millisecond},
		},
		Leaderboard: LeaderboardConfigs{
			Timezone: "America/New_York",
			CacheTTL: Duration{15 * time.Minute},
			Schedule: "*/15 * * * *",
		},
		Drawing: DrawingConfigs{LifecycleSchedule: "* * * * *"},
		Fulfillment: FulfillmentConfigs{
			Schedule:     "0 * * * *",
			WarningAfter: Duration{7 * 24 * time.Hour},
			ForfeitAfter: Duration{14 * 24 * time.Hour},
		},
		Cron: CronConfigs{TickTimeout: Duration{time.Minute}},
	}
}

// Load reads the optional .env file and the TOML file at path over the
// defaults. Secrets in the environment take precedence over the file.
func Load(path string) (Configs, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Configs{}, err
	}

	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	overrideString(&cfg.Database.Host, "DB_HOST")
	overrideString(&cfg.Database.Password, "DB_PASSWORD")
	overrideString(&cfg.Redis.Addr, "REDIS_ADDR")
	overrideString(&cfg.Storage.AccessKey, "S3_ACCESS_KEY")
	overrideString(&cfg.Storage.SecretKey, "S3_SECRET_KEY")
	if addrs := os.Getenv("KAFKA_ADDRS"); addrs != "" {
		cfg.Kafka.Addrs = strings.Split(addrs, ",")
	}

	return cfg, nil
}

func overrideString(field *string, env string) {
	if v := os.Getenv(env); v != "" {
		*field = v
	}
}
