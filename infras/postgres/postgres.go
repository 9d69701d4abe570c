package postgres

//nolint:revive
import (
	"errors"
	"net"
	"net/url"
	"time"

	"hotel/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
	defaultTimezone           = "UTC"
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Endpoint is one side of the read/write pair.
type Endpoint struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	Timezone string
	SSLMode  string
}

func New(config *config.Config) *Connection {
	read := Endpoint(config.DB.Postgres.Read)
	write := Endpoint(config.DB.Postgres.Write)

	return &Connection{
		Read:  connect("read", Descriptor(config, read), read, config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime),
		Write: connect("write", Descriptor(config, write), write, config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime),
	}
}

func (c *Connection) Close() error {
	return errors.Join(c.Read.Close(), c.Write.Close())
}

// Descriptor builds the lib/pq URL for an endpoint. Sessions default to UTC so stay dates and audit
// timestamps come back without a server-dependent offset.
func Descriptor(config *config.Config, endpoint Endpoint) string {
	query := url.Values{}
	query.Set("sslmode", endpoint.SSLMode)

	tz := endpoint.Timezone
	if tz == "" {
		tz = defaultTimezone
	}

	query.Set("timezone", tz)

	if config.App.Name != "" {
		query.Set("application_name", config.App.Name)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + config.DB.Postgres.Prefix + endpoint.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(name, descriptor string, endpoint Endpoint, maxRetry, waitTime int) *sqlx.DB {
	maxRetry = max(maxRetry, 1)

	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.
				Info().
				Str("name", name).
				Str("host", endpoint.Host).
				Str("port", endpoint.Port).
				Str("dbName", endpoint.Name).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Str("host", endpoint.Host).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	log.Fatal().Str("name", name).Str("host", endpoint.Host).Msg("Giving up connecting to database")

	return nil
}
