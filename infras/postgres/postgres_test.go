package postgres_test

import (
	"net/url"
	"testing"

	"hotel/config"
	"hotel/infras/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptor(t *testing.T) {
	endpoint := postgres.Endpoint{
		Host:     "db.local",
		Port:     "5432",
		Username: "hotel",
		Password: "p@ss word",
		Name:     "reservations",
		SSLMode:  "disable",
	}

	tests := []struct {
		name     string
		prefix   string
		timezone string
		wantPath string
		wantTZ   string
	}{
		{name: "defaults to utc", wantPath: "/reservations", wantTZ: "UTC"},
		{name: "prefixed database", prefix: "test_", timezone: "Europe/Moscow", wantPath: "/test_reservations", wantTZ: "Europe/Moscow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.App.Name = "hotel"
			cfg.DB.Postgres.Prefix = tt.prefix

			ep := endpoint
			ep.Timezone = tt.timezone

			parsed, err := url.Parse(postgres.Descriptor(cfg, ep))
			require.NoError(t, err)

			password, _ := parsed.User.Password()

			assert.Equal(t, "postgres", parsed.Scheme)
			assert.Equal(t, "db.local:5432", parsed.Host)
			assert.Equal(t, "hotel", parsed.User.Username())
			assert.Equal(t, "p@ss word", password)
			assert.Equal(t, tt.wantPath, parsed.Path)
			assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
			assert.Equal(t, tt.wantTZ, parsed.Query().Get("timezone"))
			assert.Equal(t, "hotel", parsed.Query().Get("application_name"))
		})
	}
}
