package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sharetube/watchparty/internal/app"
)

type configVar[T any] struct {
	envKey       string
	flagKey      string
	defaultValue T
	usage        string
}

var (
	host = configVar[string]{
		envKey:       "HOST",
		flagKey:      "host",
		defaultValue: "",
		usage:        "Server host",
	}
	port = configVar[int]{
		envKey:       "PORT",
		flagKey:      "port",
		defaultValue: 80,
		usage:        "Server port",
	}
	logLevel = configVar[string]{
		envKey:       "LOG_LEVEL",
		flagKey:      "log-level",
		defaultValue: "INFO",
		usage:        "Logging level",
	}
	queueLimit = configVar[int]{
		envKey:       "QUEUE_LIMIT",
		flagKey:      "queue-limit",
		defaultValue: 50,
		usage:        "Maximum number of entries in a session queue",
	}
	sessionTimeout = configVar[time.Duration]{
		envKey:       "SESSION_TIMEOUT",
		flagKey:      "session-timeout",
		defaultValue: 2 * time.Hour,
		usage:        "Inactivity after which a session is closed",
	}
	warningBefore = configVar[time.Duration]{
		envKey:       "WARNING_BEFORE",
		flagKey:      "warning-before",
		defaultValue: 15 * time.Minute,
		usage:        "How long before closing an idle session its participants are warned, at least the reaper interval",
	}
	reaperInterval = configVar[time.Duration]{
		envKey:       "REAPER_INTERVAL",
		flagKey:      "reaper-interval",
		defaultValue: 10 * time.Minute,
		usage:        "Interval between inactivity sweeps",
	}
	storeDriver = configVar[string]{
		envKey:       "STORE_DRIVER",
		flagKey:      "store-driver",
		defaultValue: "redis",
		usage:        "Snapshot store: redis, sqlite, postgres or memory",
	}
	storeTimeout = configVar[time.Duration]{
		envKey:       "STORE_TIMEOUT",
		flagKey:      "store-timeout",
		defaultValue: 5 * time.Second,
		usage:        "Timeout of a single snapshot read or write",
	}
	redisHost = configVar[string]{
		envKey:       "REDIS_HOST",
		flagKey:      "redis-host",
		defaultValue: "localhost",
		usage:        "Redis host",
	}
	redisPort = configVar[int]{
		envKey:       "REDIS_PORT",
		flagKey:      "redis-port",
		defaultValue: 6379,
		usage:        "Redis port",
	}
	redisPassword = configVar[string]{
		envKey:       "REDIS_PASSWORD",
		flagKey:      "redis-password",
		defaultValue: "",
		usage:        "Redis password",
	}
	sqlitePath = configVar[string]{
		envKey:       "SQLITE_PATH",
		flagKey:      "sqlite-path",
		defaultValue: "data/sessions.db",
		usage:        "SQLite database file",
	}
	postgresDsn = configVar[string]{
		envKey:       "POSTGRES_DSN",
		flagKey:      "postgres-dsn",
		defaultValue: "",
		usage:        "PostgreSQL connection string",
	}
	youtubeApiKey = configVar[string]{
		envKey:       "YOUTUBE_API_KEY",
		flagKey:      "youtube-api-key",
		defaultValue: "",
		usage:        "YouTube Data API key",
	}
	searchTimeout = configVar[time.Duration]{
		envKey:       "SEARCH_TIMEOUT",
		flagKey:      "search-timeout",
		defaultValue: 10 * time.Second,
		usage:        "Timeout of YouTube lookups",
	}
	sendBuffer = configVar[int]{
		envKey:       "SEND_BUFFER",
		flagKey:      "send-buffer",
		defaultValue: 32,
		usage:        "Outbound messages buffered per connection",
	}
)

// bind registers v as a flag, binds its env var and sets its default.
func bind[T any](v configVar[T], register func(name string, value T, usage string) *T) {
	register(v.flagKey, v.defaultValue, v.usage)
	viper.BindEnv(v.flagKey, v.envKey)
	viper.SetDefault(v.flagKey, v.defaultValue)
}

func loadAppConfig() *app.AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}

	bind(host, pflag.String)
	bind(port, pflag.Int)
	bind(logLevel, pflag.String)
	bind(queueLimit, pflag.Int)
	bind(sessionTimeout, pflag.Duration)
	bind(warningBefore, pflag.Duration)
	bind(reaperInterval, pflag.Duration)
	bind(storeDriver, pflag.String)
	bind(storeTimeout, pflag.Duration)
	bind(redisHost, pflag.String)
	bind(redisPort, pflag.Int)
	bind(redisPassword, pflag.String)
	bind(sqlitePath, pflag.String)
	bind(postgresDsn, pflag.String)
	bind(youtubeApiKey, pflag.String)
	bind(searchTimeout, pflag.Duration)
	bind(sendBuffer, pflag.Int)
	pflag.Parse()

	viper.BindPFlags(pflag.CommandLine)

	return &app.AppConfig{
		Host:           viper.GetString(host.flagKey),
		Port:           viper.GetInt(port.flagKey),
		LogLevel:       viper.GetString(logLevel.flagKey),
		QueueLimit:     viper.GetInt(queueLimit.flagKey),
		SessionTimeout: viper.GetDuration(sessionTimeout.flagKey),
		WarningBefore:  viper.GetDuration(warningBefore.flagKey),
		ReaperInterval: viper.GetDuration(reaperInterval.flagKey),
		StoreDriver:    viper.GetString(storeDriver.flagKey),
		StoreTimeout:   viper.GetDuration(storeTimeout.flagKey),
		RedisHost:      viper.GetString(redisHost.flagKey),
		RedisPort:      viper.GetInt(redisPort.flagKey),
		RedisPassword:  viper.GetString(redisPassword.flagKey),
		SqlitePath:     viper.GetString(sqlitePath.flagKey),
		PostgresDsn:    viper.GetString(postgresDsn.flagKey),
		YoutubeApiKey:  viper.GetString(youtubeApiKey.flagKey),
		SearchTimeout:  viper.GetDuration(searchTimeout.flagKey),
		SendBuffer:     viper.GetInt(sendBuffer.flagKey),
	}
}

func main() {
	ctx := context.Background()

	appConfig := loadAppConfig()

	jsonConfig, _ := json.MarshalIndent(appConfig, "", "  ")
	fmt.Printf("starting app with config: %s\n", jsonConfig)

	if err := app.Run(ctx, appConfig); err != nil {
		log.Fatal(err)
	}
}
