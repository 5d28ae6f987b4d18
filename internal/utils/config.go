package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/benmeehan/ble-overlap/internal/constants"
	"github.com/benmeehan/ble-overlap/pkg/ble"
	"github.com/benmeehan/ble-overlap/pkg/distance"
	"github.com/benmeehan/ble-overlap/pkg/file"
	"github.com/joho/godotenv"
)

// Config represents the structure of the configuration file.
type Config struct {
	Logger struct {
		Level  string `yaml:"level"`  // debug, info, warn, error
		Format string `yaml:"format"` // console or json
	} `yaml:"logger"`

	Scanner struct {
		Backend  string        `yaml:"backend"`  // tinygo or hci
		Duration time.Duration `yaml:"duration"` // How long each pass listens
	} `yaml:"scanner"`

	Correlation struct {
		InterScanDelay   time.Duration `yaml:"inter_scan_delay"`   // Pause between pass 1 and pass 2
		ReferencePower   int           `yaml:"reference_power"`    // RSSI at 1 meter (dBm)
		PathLossExponent float64       `yaml:"path_loss_exponent"` // 2 = free space
	} `yaml:"correlation"`

	Station struct {
		Name         string `yaml:"name"`          // Human readable station name
		IdentityFile string `yaml:"identity_file"` // Path to the station identity file

		GPS struct {
			Enabled     bool          `yaml:"enabled"`      // Attach a GPS fix to reports
			Port        string        `yaml:"port"`         // Serial port of the GPS receiver
			BaudRate    int           `yaml:"baud_rate"`    // Baud rate of the GPS receiver
			ReadTimeout time.Duration `yaml:"read_timeout"` // Serial read timeout
			FixTimeout  time.Duration `yaml:"fix_timeout"`  // Give up on a fix after this long
		} `yaml:"gps"`
	} `yaml:"station"`

	MQTT struct {
		Enabled        bool          `yaml:"enabled"`         // Publish reports to the broker
		Broker         string        `yaml:"broker"`          // MQTT broker address
		ClientID       string        `yaml:"client_id"`       // MQTT client ID prefix
		Username       string        `yaml:"username"`        // Optional broker username
		Password       string        `yaml:"password"`        // Optional broker password
		CACertificate  string        `yaml:"ca_certificate"`  // Path to the CA certificate, enables TLS
		Topic          string        `yaml:"topic"`           // Topic overlap reports are published to
		QOS            int           `yaml:"qos"`             // MQTT QoS level for reports
		Retained       bool          `yaml:"retained"`        // Publish reports as retained messages
		PublishTimeout time.Duration `yaml:"publish_timeout"` // How long to wait for the broker ack
	} `yaml:"mqtt"`
}

// ConfigError describes an invalid configuration value.
type ConfigError struct {
	Section string
	Field   string
	Value   interface{}
	Message string
}

func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s.%s: %s (got: %v)", e.Section, e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s.%s: %s", e.Section, e.Field, e.Message)
}

// DefaultConfig returns the configuration used for every key the file leaves out.
func DefaultConfig() Config {
	var config Config

	config.Logger.Level = "info"
	config.Logger.Format = "console"

	config.Scanner.Backend = ble.BackendTinyGo
	config.Scanner.Duration = constants.DefaultScanDuration

	config.Correlation.InterScanDelay = constants.DefaultInterScanDelay
	config.Correlation.ReferencePower = distance.DefaultReferencePower
	config.Correlation.PathLossExponent = distance.DefaultPathLossExponent

	config.Station.IdentityFile = "station.json"
	config.Station.GPS.BaudRate = 9600
	config.Station.GPS.ReadTimeout = 2 * time.Second
	config.Station.GPS.FixTimeout = constants.DefaultFixTimeout

	config.MQTT.ClientID = "ble-overlap"
	config.MQTT.Topic = "ble/overlaps"
	config.MQTT.QOS = 1
	config.MQTT.PublishTimeout = 10 * time.Second

	return config
}

// LoadConfig loads the YAML configuration from the specified file on top of the
// defaults, applies environment overrides and validates the result.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	config := DefaultConfig()
	if err := fileClient.ReadYamlFile(filename, &config); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", filename, err)
	}

	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// applyEnv overrides file values with environment variables, reading .env when present.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	c.Logger.Level = getEnv("LOG_LEVEL", c.Logger.Level)
	c.Logger.Format = getEnv("LOG_FORMAT", c.Logger.Format)

	c.Scanner.Backend = getEnv("BLE_SCANNER_BACKEND", c.Scanner.Backend)
	c.Scanner.Duration = getEnvAsDuration("BLE_SCAN_DURATION", c.Scanner.Duration)
	c.Correlation.InterScanDelay = getEnvAsDuration("BLE_INTER_SCAN_DELAY", c.Correlation.InterScanDelay)
	c.Correlation.ReferencePower = getEnvAsInt("BLE_REFERENCE_POWER", c.Correlation.ReferencePower)
	c.Correlation.PathLossExponent = getEnvAsFloat("BLE_PATH_LOSS_EXPONENT", c.Correlation.PathLossExponent)

	c.MQTT.Enabled = getEnvAsBool("MQTT_ENABLED", c.MQTT.Enabled)
	c.MQTT.Broker = getEnv("MQTT_BROKER", c.MQTT.Broker)
	c.MQTT.Username = getEnv("MQTT_USERNAME", c.MQTT.Username)
	c.MQTT.Password = getEnv("MQTT_PASSWORD", c.MQTT.Password)
}

// Validate checks the configuration for values the scanner cannot work with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logger.Format) {
	case "console", "json":
	default:
		return &ConfigError{Section: "logger", Field: "format", Value: c.Logger.Format, Message: "must be console or json"}
	}

	switch strings.ToLower(c.Scanner.Backend) {
	case ble.BackendTinyGo, ble.BackendHCI:
	default:
		return &ConfigError{Section: "scanner", Field: "backend", Value: c.Scanner.Backend, Message: "must be tinygo or hci"}
	}
	if c.Scanner.Duration <= 0 {
		return &ConfigError{Section: "scanner", Field: "duration", Value: c.Scanner.Duration, Message: "must be positive"}
	}

	if c.Correlation.InterScanDelay < 0 {
		return &ConfigError{Section: "correlation", Field: "inter_scan_delay", Value: c.Correlation.InterScanDelay, Message: "cannot be negative"}
	}
	if c.Correlation.PathLossExponent <= 0 {
		return &ConfigError{Section: "correlation", Field: "path_loss_exponent", Value: c.Correlation.PathLossExponent, Message: "must be positive"}
	}

	if c.Station.GPS.Enabled {
		if c.Station.GPS.Port == "" {
			return &ConfigError{Section: "station", Field: "gps.port", Message: "is required when gps is enabled"}
		}
		if c.Station.GPS.BaudRate <= 0 {
			return &ConfigError{Section: "station", Field: "gps.baud_rate", Value: c.Station.GPS.BaudRate, Message: "must be positive"}
		}
		if c.Station.GPS.FixTimeout <= 0 {
			return &ConfigError{Section: "station", Field: "gps.fix_timeout", Value: c.Station.GPS.FixTimeout, Message: "must be positive"}
		}
	}

	if c.MQTT.Enabled {
		if c.MQTT.Broker == "" {
			return &ConfigError{Section: "mqtt", Field: "broker", Message: "is required when mqtt is enabled"}
		}
		if c.MQTT.Topic == "" {
			return &ConfigError{Section: "mqtt", Field: "topic", Message: "is required when mqtt is enabled"}
		}
		if c.MQTT.QOS < 0 || c.MQTT.QOS > 2 {
			return &ConfigError{Section: "mqtt", Field: "qos", Value: c.MQTT.QOS, Message: "must be 0, 1, or 2"}
		}
		if c.MQTT.PublishTimeout <= 0 {
			return &ConfigError{Section: "mqtt", Field: "publish_timeout", Value: c.MQTT.PublishTimeout, Message: "must be positive"}
		}
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
