package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAdmin()
	c.normalizeFirestore()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.PublicDir) == "" {
		c.Paths.PublicDir = defaultPublicDir
	}
	if c.Paths.PublicDir, err = expandPath(c.Paths.PublicDir); err != nil {
		return fmt.Errorf("paths.public_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.APIBind) == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	return nil
}

func (c *Config) normalizeAdmin() {
	if env := strings.TrimSpace(os.Getenv("ADMIN_PASSWORD")); env != "" {
		c.Admin.Password = env
	}
	if c.Admin.Password == "" {
		c.Admin.Password = defaultAdminPassword
	}
}

func (c *Config) normalizeFirestore() {
	if env := strings.TrimSpace(os.Getenv("FIRESTORE_PROJECT_ID")); env != "" {
		c.Firestore.ProjectID = env
	}
	if env := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")); env != "" && c.Firestore.CredentialsFile == "" {
		c.Firestore.CredentialsFile = env
	}
	if strings.TrimSpace(c.Firestore.SubscribersCollection) == "" {
		c.Firestore.SubscribersCollection = defaultSubscribersCollection
	}
	if strings.TrimSpace(c.Firestore.IdeasCollection) == "" {
		c.Firestore.IdeasCollection = defaultIdeasCollection
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
