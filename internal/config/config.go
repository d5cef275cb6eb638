package config

import (
	"crypto/rand"
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPAddr      string `envconfig:"HTTP_ADDR" default:":8080"`
	DBPath        string `envconfig:"DB_PATH" default:"database.db"`
	UploadDir     string `envconfig:"UPLOAD_DIR" default:"static/uploads"`
	SessionSecret string `envconfig:"SESSION_SECRET"`
}

// Load reads the configuration from the environment. When no session
// secret is configured a random per-process one is generated, which
// means sessions do not survive a restart.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	if c.SessionSecret == "" {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return Config{}, fmt.Errorf("generate session secret: %w", err)
		}
		c.SessionSecret = fmt.Sprintf("%x", secret)
	}
	return c, nil
}
