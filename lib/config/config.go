package config

import (
	"os"

	"github.com/go-i2p/logger"
	"github.com/keylime/go-keylime/lib/util"
)

var log = logger.GetGoI2PLogger()

// Resolver resolves settings with the precedence environment variable,
// then configuration file, then compiled-in default. Nothing is cached:
// every call reads the environment and re-parses the file.
type Resolver struct {
	Constants Constants

	// Getenv reads an environment variable. An empty result is treated as
	// unset. Defaults to os.Getenv.
	Getenv func(string) string
}

// NewResolver returns a Resolver reading the process environment.
func NewResolver(c Constants) *Resolver {
	return &Resolver{
		Constants: c,
		Getenv:    os.Getenv,
	}
}

func (r *Resolver) getenv(name string) string {
	if name == "" {
		return ""
	}
	if r.Getenv == nil {
		return os.Getenv(name)
	}
	return r.Getenv(name)
}

// ConfigPath returns the configuration file named by the ConfigEnv
// environment variable, or DefaultConfig when it is unset or empty.
func (r *Resolver) ConfigPath() string {
	if p := r.getenv(r.Constants.ConfigEnv); p != "" {
		return p
	}
	return r.Constants.DefaultConfig
}

// Get loads the configuration file and returns the value of key within
// section. Any failure is a *ConfigError naming the file, section and key.
func (r *Resolver) Get(section, key string) (string, error) {
	path := r.ConfigPath()

	doc, err := loadDocument(path)
	if err != nil {
		reason := "cannot load file"
		if !util.CheckFileExists(path) {
			reason = "file not found"
		}
		log.WithFields(logger.Fields{
			"at":      "Resolver.Get",
			"reason":  "load_failed",
			"file":    path,
			"section": section,
			"key":     key,
		}).Debug("configuration file could not be loaded")
		return "", &ConfigError{File: path, Section: section, Key: key, Reason: reason, Err: err}
	}

	if !doc.hasSection(section) {
		return "", &ConfigError{File: path, Section: section, Key: key, Reason: "cannot find section"}
	}

	value, ok := doc.value(section, key)
	if !ok {
		return "", &ConfigError{File: path, Section: section, Key: key, Reason: "cannot find key"}
	}

	log.WithFields(logger.Fields{
		"at":      "Resolver.Get",
		"file":    path,
		"section": section,
		"key":     key,
	}).Debug("resolved setting from configuration file")
	return value, nil
}

// GetWithEnvOverride returns the value of the environment variable env when
// it is set and non-empty, without consulting the file. Otherwise it
// delegates to Get.
func (r *Resolver) GetWithEnvOverride(section, key, env string) (string, error) {
	if v := r.getenv(env); v != "" {
		log.WithFields(logger.Fields{
			"at":      "Resolver.GetWithEnvOverride",
			"env":     env,
			"section": section,
			"key":     key,
		}).Debug("resolved setting from environment")
		return v, nil
	}
	return r.Get(section, key)
}
