// Package config manages user-level settings stored at ~/.sviny/config.yaml.
// Every key can also be supplied through a SVINY_-prefixed environment
// variable, which takes precedence over the file.
package config
