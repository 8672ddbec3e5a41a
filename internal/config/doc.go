// Package config handles loading and validating the application
// configuration from environment variables, organized into logical
// sections for the server, database, job queue lanes, and mail
// transport.
package config
