// Package config loads the ESXi login credentials consumed by the tool.
// Credentials come from an XML or YAML file, with environment variables
// (optionally via a local .env) taking precedence over file fields.
package config

import (
	"encoding/xml"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the credentials file.
const (
	EnvHost     = "ESXI_HOST"
	EnvUsername = "ESXI_USERNAME"
	EnvPassword = "ESXI_PASSWORD"
)

// Credentials holds what is needed to open the host's management session.
// Host may carry an explicit port ("esx01:2222"); port 22 is assumed otherwise.
type Credentials struct {
	Host     string `xml:"host" yaml:"host"`
	Username string `xml:"username" yaml:"username"`
	Password string `xml:"password" yaml:"password"`
}

// Load reads credentials from the file at path and applies environment
// overrides. The file may be absent when the environment supplies the missing
// fields. Password may legitimately come back empty; callers decide whether to
// prompt for it.
func Load(path string) (Credentials, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var creds Credentials
	data, readErr := os.ReadFile(path)
	if readErr == nil {
		parsed, err := parse(path, data)
		if err != nil {
			return Credentials{}, err
		}
		creds = parsed
	} else if !os.IsNotExist(readErr) {
		return Credentials{}, fmt.Errorf("reading credentials: %w", readErr)
	}

	applyEnv(&creds)
	creds.trim()

	if err := creds.validate(); err != nil {
		if readErr != nil {
			return Credentials{}, fmt.Errorf("%w (credentials file: %w)", err, readErr)
		}
		return Credentials{}, err
	}
	return creds, nil
}

func parse(path string, data []byte) (Credentials, error) {
	var creds Credentials
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &creds); err != nil {
			return Credentials{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := xml.Unmarshal(data, &creds); err != nil {
			return Credentials{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	return creds, nil
}

func applyEnv(creds *Credentials) {
	if v := os.Getenv(EnvHost); v != "" {
		creds.Host = v
	}
	if v := os.Getenv(EnvUsername); v != "" {
		creds.Username = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		creds.Password = v
	}
}

func (c *Credentials) trim() {
	c.Host = strings.TrimSpace(c.Host)
	c.Username = strings.TrimSpace(c.Username)
	c.Password = strings.TrimSpace(c.Password)
}

func (c Credentials) validate() error {
	if c.Host == "" {
		return errors.New("credentials: host is required")
	}
	if c.Username == "" {
		return errors.New("credentials: username is required")
	}
	return nil
}
