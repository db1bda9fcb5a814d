package config

import "errors"

// WithPort sets the HTTP listen port.
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return errors.New("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the runtime environment name.
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return errors.New("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithDatabase configures the repository backend. dbType must be "memory" or
// "postgres"; databaseURL is required for postgres.
func WithDatabase(dbType, databaseURL string) Option {
	return func(c *ServerConfig) error {
		switch dbType {
		case "memory":
			c.DatabaseType = "memory"
			c.DatabaseURL = ""
		case "postgres":
			if databaseURL == "" {
				return errors.New("database URL is required for postgres")
			}
			c.DatabaseType = "postgres"
			c.DatabaseURL = databaseURL
		default:
			return errors.New("database type must be 'memory' or 'postgres'")
		}
		return nil
	}
}

// WithFSStorage configures filesystem asset storage rooted at baseDir.
func WithFSStorage(baseDir, urlPrefix string) Option {
	return func(c *ServerConfig) error {
		if baseDir == "" {
			return errors.New("base dir is required for fs storage")
		}
		c.StorageType = "fs"
		c.FSBaseDir = baseDir
		c.FSURLPrefix = urlPrefix
		return nil
	}
}

// WithS3Storage configures S3 asset storage.
func WithS3Storage(region, bucket, endpoint string) Option {
	return func(c *ServerConfig) error {
		if bucket == "" {
			return errors.New("bucket is required for s3 storage")
		}
		c.StorageType = "s3"
		c.S3Region = region
		c.S3Bucket = bucket
		c.S3Endpoint = endpoint
		return nil
	}
}

// WithJWTSecret sets the HMAC secret used to verify requester tokens.
func WithJWTSecret(secret string) Option {
	return func(c *ServerConfig) error {
		c.JWTSecret = secret
		return nil
	}
}
