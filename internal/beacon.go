package internal

import (
	"context"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// VERSION follows semantic versioning.
const VERSION = "1.2.0"

const (
	PermissionsDefault = 0o744

	defaultLargeThreshold       = 100
	defaultMaxReconnectAttempts = 10
)

// BeaconConfiguration represents the configuration file.
type BeaconConfiguration struct {
	Logging struct {
		Level              string `json:"level" yaml:"level"`
		FileLoggingEnabled bool   `json:"file_logging_enabled" yaml:"file_logging_enabled"`

		Directory  string `json:"directory" yaml:"directory"`
		Filename   string `json:"filename" yaml:"filename"`
		MaxSize    int    `json:"max_size" yaml:"max_size"`
		MaxBackups int    `json:"max_backups" yaml:"max_backups"`
		MaxAge     int    `json:"max_age" yaml:"max_age"`
		Compress   bool   `json:"compress" yaml:"compress"`
	} `json:"logging" yaml:"logging"`

	Bot struct {
		Token                string `json:"token" yaml:"token"`
		LargeThreshold       int32  `json:"large_threshold" yaml:"large_threshold"`
		ShardNum             int32  `json:"shard_num" yaml:"shard_num"`
		ShardTotal           int32  `json:"shard_total" yaml:"shard_total"`
		MaxReconnectAttempts int32  `json:"max_reconnect_attempts" yaml:"max_reconnect_attempts"`
	} `json:"bot" yaml:"bot"`

	Cache struct {
		MessagesPerChannel int `json:"messages_per_channel" yaml:"messages_per_channel"`
	} `json:"cache" yaml:"cache"`

	Prometheus struct {
		Host string `json:"host" yaml:"host"`
	} `json:"prometheus" yaml:"prometheus"`

	Status struct {
		Host string `json:"host" yaml:"host"`
	} `json:"status" yaml:"status"`

	Producer struct {
		Type          string                 `json:"type" yaml:"type"`
		ClientName    string                 `json:"client_name" yaml:"client_name"`
		ChannelName   string                 `json:"channel_name" yaml:"channel_name"`
		Configuration map[string]interface{} `json:"configuration" yaml:"configuration"`
	} `json:"producer" yaml:"producer"`
}

// Beacon represents the application state.
type Beacon struct {
	sync.Mutex

	ctx    context.Context
	cancel func()

	Logger zerolog.Logger

	ConfigurationLocation string

	configurationMu sync.RWMutex
	Configuration   BeaconConfiguration

	Client *Client

	Session *Session
}

// NewBeacon creates the application state and initializes it.
func NewBeacon(logger io.Writer, configurationLocation string) (*Beacon, error) {
	b := &Beacon{
		Logger: zerolog.New(logger).With().Timestamp().Logger(),

		ConfigurationLocation: configurationLocation,
	}

	b.ctx, b.cancel = context.WithCancel(context.Background())

	configuration, err := b.LoadConfiguration(configurationLocation)
	if err != nil {
		return nil, err
	}

	b.configurationMu.Lock()
	b.Configuration = configuration
	b.configurationMu.Unlock()

	if level, err := zerolog.ParseLevel(configuration.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	b.Client = NewClient(configuration.Bot.Token)

	return b, nil
}

// LoadConfiguration handles loading the configuration file.
func (b *Beacon) LoadConfiguration(path string) (configuration BeaconConfiguration, err error) {
	b.Logger.Debug().
		Str("path", path).
		Msg("Loading configuration")

	defer func() {
		if err == nil {
			b.Logger.Info().Msg("Configuration loaded")
		}
	}()

	file, err := os.ReadFile(path)
	if err != nil {
		return configuration, ErrReadConfigurationFailure
	}

	err = yaml.Unmarshal(file, &configuration)
	if err != nil {
		return configuration, ErrLoadConfigurationFailure
	}

	if token := os.Getenv("BEACON_TOKEN"); token != "" {
		configuration.Bot.Token = token
	}

	if configuration.Bot.LargeThreshold == 0 {
		configuration.Bot.LargeThreshold = defaultLargeThreshold
	}

	if configuration.Bot.ShardTotal == 0 {
		configuration.Bot.ShardTotal = 1
	}

	if configuration.Bot.MaxReconnectAttempts == 0 {
		configuration.Bot.MaxReconnectAttempts = defaultMaxReconnectAttempts
	}

	if configuration.Cache.MessagesPerChannel == 0 {
		configuration.Cache.MessagesPerChannel = DefaultMessagesPerChannel
	}

	err = validateConfiguration(configuration)
	if err != nil {
		return configuration, err
	}

	return configuration, nil
}

func validateConfiguration(configuration BeaconConfiguration) error {
	if configuration.Bot.Token == "" {
		return ErrConfigurationValidateToken
	}

	if configuration.Bot.LargeThreshold < 50 || configuration.Bot.LargeThreshold > 250 {
		return ErrConfigurationValidateLargeThreshold
	}

	if configuration.Bot.ShardNum < 0 || configuration.Bot.ShardNum >= configuration.Bot.ShardTotal {
		return ErrConfigurationValidateShard
	}

	return nil
}

// Open starts the services and the gateway session.
func (b *Beacon) Open() error {
	b.Logger.Info().Str("version", VERSION).Msg("Starting beacon")

	if host := b.Configuration.Prometheus.Host; host != "" {
		go func() {
			err := b.servePrometheus(host)
			if err != nil {
				b.Logger.Error().Err(err).Msg("Failed to serve prometheus")
			}
		}()
	}

	if host := b.Configuration.Status.Host; host != "" {
		go func() {
			err := b.ServeStatus(host)
			if err != nil {
				b.Logger.Error().Err(err).Msg("Failed to serve status")
			}
		}()
	}

	b.Session = b.NewSession()

	err := b.Session.Bus.Connect(b.ctx)
	if err != nil {
		return err
	}

	go func() {
		err := b.Session.Open()
		if err != nil {
			b.Logger.Error().Err(err).Msg("Session terminated")
		}
	}()

	return nil
}

func (b *Beacon) servePrometheus(host string) error {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.HandlerFor(
		prometheus.DefaultGatherer,
		promhttp.HandlerOpts{},
	))

	b.Logger.Info().Str("host", host).Msg("Serving prometheus")

	return http.ListenAndServe(host, mux)
}

// Close gracefully closes the application.
func (b *Beacon) Close() error {
	b.Logger.Info().Msg("Closing beacon")

	if b.Session != nil {
		b.Session.Close()
	}

	b.cancel()

	return nil
}

// Messages returns the in-process API message stream of the session bus.
func (b *Beacon) Messages() <-chan *APIMessage {
	if b.Session == nil {
		return nil
	}

	return b.Session.Bus.Messages()
}

// Snapshot returns the latest published cache snapshot.
func (b *Beacon) Snapshot() *Snapshot {
	if b.Session == nil {
		return nil
	}

	return b.Session.State.Snapshot()
}
