package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Queue    QueueConfig    `mapstructure:"queue"    validate:"required"`
	Mail     MailConfig     `mapstructure:"mail"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// QueueConfig contains the buffer capacity for each job lane. Capacity
// is the only tunable the job subsystem exposes.
type QueueConfig struct {
	NotificationCapacity int `mapstructure:"notification_capacity" validate:"required,gt=0"`
	MessageCapacity      int `mapstructure:"message_capacity"      validate:"required,gt=0"`
}

// MailConfig contains the SMTP settings used for outbound messages.
type MailConfig struct {
	Host     string `mapstructure:"host"     validate:"required"`
	Port     int    `mapstructure:"port"     validate:"required,gt=0,lt=65536"`
	From     string `mapstructure:"from"     validate:"required,email"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}
