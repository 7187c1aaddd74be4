package internal

import (
	"fmt"
	"time"
)

const (
	StoreBadger = "badger"
	StoreMongo  = "mongo"
)

type Config struct {
	DiscordToken         string        `env:"DISCORD_TOKEN,required=true"`
	AdminChannelID       string        `env:"ADMIN_CHANNEL_ID"`
	StoreDriver          string        `env:"STORE_DRIVER,default=badger"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,default=./data/meetups"`
	MongoURI             string        `env:"MONGO_URI,default=mongodb://localhost:27017"`
	MongoDatabase        string        `env:"MONGO_DATABASE,default=meetup-bot"`
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
	TimeZone             string        `env:"TIME_ZONE,default=America/Los_Angeles"`
	RenderDebounce       time.Duration `env:"RENDER_DEBOUNCE,default=2s"`
	EventBuffer          int           `env:"EVENT_BUFFER,default=256"`
	EventSendTimeout     time.Duration `env:"EVENT_SEND_TIMEOUT,default=5s"`
	CommandTimeout       time.Duration `env:"COMMAND_TIMEOUT,default=30s"`
	RehydrateConcurrency int           `env:"REHYDRATE_CONCURRENCY,default=4"`
	ExpiryInterval       time.Duration `env:"EXPIRY_INTERVAL,default=10m"`
	EndGrace             time.Duration `env:"END_GRACE,default=6h"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	DebugPort            int           `env:"DEBUG_PORT"`
}

// Validate checks the values the environment parser cannot.
func (c Config) Validate() error {
	if c.StoreDriver != StoreBadger && c.StoreDriver != StoreMongo {
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreBadger, StoreMongo, c.StoreDriver)
	}
	if c.EventBuffer <= 0 {
		return fmt.Errorf("EVENT_BUFFER must be positive, got %d", c.EventBuffer)
	}
	if c.ExpiryInterval <= 0 {
		return fmt.Errorf("EXPIRY_INTERVAL must be positive, got %s", c.ExpiryInterval)
	}
	return nil
}

// Location loads the zone meetup times are displayed in.
func (c Config) Location() (*time.Location, error) {
	location, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("TIME_ZONE %q: %w", c.TimeZone, err)
	}
	return location, nil
}
