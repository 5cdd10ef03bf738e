// Package config loads the postmarkit command settings with viper from an
// optional postmarkit.yaml and POSTMARKIT_* environment variables.
package config
