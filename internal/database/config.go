package database

import (
	"errors"
	"fmt"
	"net/url"
)

// Config holds the connection settings of the remote store.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	// MigrationsPath is the directory holding the SQL migration files.
	MigrationsPath string
}

// Validate reports settings without which no connection can be attempted.
func (c *Config) Validate() error {
	var errs []error
	if c.Host == "" {
		errs = append(errs, errors.New("host is required"))
	}
	if c.DBName == "" {
		errs = append(errs, errors.New("database name is required"))
	}
	if c.User == "" {
		errs = append(errs, errors.New("user is required"))
	}
	return errors.Join(errs...)
}

// DSN returns the key/value connection string gorm's postgres driver takes.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the connection string in URL form, as golang-migrate expects.
func (c *Config) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// SourceURL returns the golang-migrate source URL for MigrationsPath.
func (c *Config) SourceURL() string {
	path := c.MigrationsPath
	if path == "" {
		path = "migrations"
	}
	return "file://" + path
}
