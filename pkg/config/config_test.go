package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "MAX_CVS_PER_USER", "MAX_FILES_PER_UPLOAD", "MAX_FILE_SIZE_BYTES", "ALLOWED_CONTENT_TYPES", "STORAGE_DRIVER"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30, cfg.MaxCVs)
	assert.Equal(t, 5, cfg.BatchCap)
	assert.Equal(t, int64(5<<20), cfg.MaxFileSize)
	assert.Len(t, cfg.AllowedTypes, 3)
	assert.Equal(t, "minio", cfg.Storage.Driver)
	assert.Equal(t, "cv_updates", cfg.AMQPExchange)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MAX_CVS_PER_USER", "12")
	t.Setenv("STORAGE_DRIVER", "S3")
	t.Setenv("ALLOWED_CONTENT_TYPES", "application/pdf, ,")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("MAX_FILE_SIZE_BYTES", "oops")

	cfg := Load()
	assert.Equal(t, 12, cfg.MaxCVs)
	assert.Equal(t, "s3", cfg.Storage.Driver)
	assert.Equal(t, []string{"application/pdf"}, cfg.AllowedTypes)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, int64(5<<20), cfg.MaxFileSize)
}
