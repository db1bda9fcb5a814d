package config

import (
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got: %s", cfg.Port)
	}
	if cfg.DatabaseType != "memory" {
		t.Errorf("expected default database type memory, got: %s", cfg.DatabaseType)
	}
	if cfg.StorageType != "memory" {
		t.Errorf("expected default storage type memory, got: %s", cfg.StorageType)
	}
	if !cfg.EnableEventLogging {
		t.Error("expected event logging enabled by default")
	}
}

func TestWithPort(t *testing.T) {
	cfg, err := Load(WithPort("9090"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got: %s", cfg.Port)
	}
}

func TestWithPortEmpty(t *testing.T) {
	_, err := Load(WithPort(""))
	if err == nil {
		t.Error("expected error for empty port, got nil")
	}
}

func TestWithEnvironment(t *testing.T) {
	cfg, err := Load(WithEnvironment("production"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.Environment != "production" {
		t.Errorf("expected environment production, got: %s", cfg.Environment)
	}
}

func TestWithDatabase(t *testing.T) {
	tests := []struct {
		name      string
		dbType    string
		url       string
		wantError bool
	}{
		{"memory valid", "memory", "", false},
		{"postgres valid", "postgres", "postgresql://localhost/test", false},
		{"postgres missing url", "postgres", "", true},
		{"invalid type", "mysql", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(WithDatabase(tt.dbType, tt.url))
			if tt.wantError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.DatabaseType != tt.dbType {
				t.Errorf("expected database type %s, got %s", tt.dbType, cfg.DatabaseType)
			}
		})
	}
}

func TestWithFSStorage(t *testing.T) {
	cfg, err := Load(WithFSStorage("/tmp/assets", "http://localhost:8080/assets"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.StorageType != "fs" {
		t.Errorf("expected storage type fs, got: %s", cfg.StorageType)
	}
	if cfg.FSBaseDir != "/tmp/assets" {
		t.Errorf("expected base dir /tmp/assets, got: %s", cfg.FSBaseDir)
	}
}

func TestWithFSStorageEmptyDir(t *testing.T) {
	_, err := Load(WithFSStorage("", ""))
	if err == nil {
		t.Error("expected error for empty base dir, got nil")
	}
}

func TestWithS3Storage(t *testing.T) {
	cfg, err := Load(WithS3Storage("us-east-1", "my-bucket", ""))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.StorageType != "s3" {
		t.Errorf("expected storage type s3, got: %s", cfg.StorageType)
	}
	if cfg.S3Bucket != "my-bucket" {
		t.Errorf("expected bucket my-bucket, got: %s", cfg.S3Bucket)
	}
}

func TestWithS3StorageEmptyBucket(t *testing.T) {
	_, err := Load(WithS3Storage("us-east-1", "", ""))
	if err == nil {
		t.Error("expected error for empty bucket, got nil")
	}
}

func TestBuildServiceMemory(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	svc, err := cfg.BuildService()
	if err != nil {
		t.Fatalf("expected no error building service, got: %v", err)
	}
	if svc == nil {
		t.Fatal("expected service, got nil")
	}
}
