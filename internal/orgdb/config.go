package orgdb

import (
	"net"
	"net/url"
	"strconv"

	"github.com/hxeb/hxebclass/pkg/constants"
	"github.com/hxeb/hxebclass/pkg/errors"
)

// Config describes how to reach the org database.
type Config struct {
	Driver   string // sqlserver (default), pgx, or sqlite
	DSN      string // used as is when set
	Host     string
	Port     int
	User     string
	Password string
	Name     string // database name, or file path for sqlite
}

// DriverName returns the database/sql driver to open.
func (c Config) DriverName() string {
	if c.Driver == "" {
		return constants.DriverSQLServer
	}
	return c.Driver
}

// DataSource returns the connection string for the configured driver.
func (c Config) DataSource() (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}

	switch c.DriverName() {
	case constants.DriverSQLServer:
		if c.Host == "" {
			return "", errors.NewConfigError("db", "db.host is required", nil)
		}
		u := &url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(c.User, c.Password),
			Host:     c.hostPort(1433),
			RawQuery: url.Values{"database": {c.Name}}.Encode(),
		}
		return u.String(), nil

	case constants.DriverPostgres:
		if c.Host == "" {
			return "", errors.NewConfigError("db", "db.host is required", nil)
		}
		u := &url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(c.User, c.Password),
			Host:   c.hostPort(5432),
			Path:   "/" + c.Name,
		}
		return u.String(), nil

	case constants.DriverSQLite:
		if c.Name == "" {
			return "", errors.NewConfigError("db", "db.name must name the sqlite file", nil)
		}
		return c.Name, nil

	default:
		return "", errors.NewConfigError("db", "unsupported driver "+strconv.Quote(c.Driver), nil)
	}
}

func (c Config) hostPort(defaultPort int) string {
	port := c.Port
	if port == 0 {
		port = defaultPort
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}
