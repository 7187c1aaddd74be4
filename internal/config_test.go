package internal

import (
	"testing"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	req := require.New(t)
	t.Setenv("DISCORD_TOKEN", "token")

	var config Config
	_, err := env.UnmarshalFromEnviron(&config)

	req.NoError(err)
	req.Equal(StoreBadger, config.StoreDriver)
	req.Equal(256, config.EventBuffer)
	req.NoError(config.Validate())
	location, err := config.Location()
	req.NoError(err)
	req.Equal("America/Los_Angeles", location.String())
}

func TestConfig_Rejects_Unknown_Store(t *testing.T) {
	req := require.New(t)
	config := Config{StoreDriver: "postgres", EventBuffer: 1, ExpiryInterval: 1}

	req.Error(config.Validate())
}
