package config

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration loading and processing.

// ErrConfigRead indicates an error occurred while reading the config file.
var ErrConfigRead = errors.New("failed to read configuration file")

// ErrConfigParse indicates an error occurred while parsing the config file.
var ErrConfigParse = errors.New("failed to parse configuration file")

// ErrConfigDirCreate indicates an error occurred while creating the config directory.
var ErrConfigDirCreate = errors.New("failed to create config directory")

// ErrConfigDirStat indicates an error occurred while checking the config directory.
var ErrConfigDirStat = errors.New("failed to check config directory")

// ErrConfigDirNotDir indicates the config path exists but is not a directory.
var ErrConfigDirNotDir = errors.New("config path exists but is not a directory")

// ErrDefaultFileWrite indicates an error occurred while writing a default config file.
var ErrDefaultFileWrite = errors.New("failed to write default config file")

// ErrDefaultFileStat indicates an error occurred while checking a default config file.
var ErrDefaultFileStat = errors.New("failed to check default config file")

// ErrKeyringSet indicates an error occurred while setting a key in the OS keyring.
var ErrKeyringSet = errors.New("failed to set key in OS keyring")

// ErrKeyringGet indicates an error occurred while getting a key from the OS keyring (excluding 'not found').
var ErrKeyringGet = errors.New("failed to get key from OS keyring")

// ErrAPIKeyNotFound is returned when an API key is neither configured nor in the keyring.
var ErrAPIKeyNotFound = errors.New("API key not found in configuration, environment or OS keyring")

// ErrConfiguration marks a deployment that is missing something it needs to
// serve a request, such as an API key or a store URL.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError names the component that is misconfigured and what is
// missing. It matches ErrConfiguration with errors.Is.
type ConfigurationError struct {
	Component string
	Details   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConfiguration, e.Component, e.Details)
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func configurationError(component, format string, args ...any) error {
	return &ConfigurationError{Component: component, Details: fmt.Sprintf(format, args...)}
}
