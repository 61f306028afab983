package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, StorageFile, cfg.Storage.Driver)
	assert.Equal(t, "teachers", cfg.Storage.Key)
	assert.Equal(t, 10, cfg.Roster.PageSize)
	assert.Equal(t, 5*time.Second, cfg.Roster.NotificationTTL)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("STORAGE_DRIVER", " Redis ")
	v.Set("ROSTER_PAGE_SIZE", 0)
	v.Set("NOTIFICATION_TTL", "not-a-duration")
	v.Set("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	cfg := fromViper(v)

	assert.Equal(t, StorageRedis, cfg.Storage.Driver)
	assert.Equal(t, 10, cfg.Roster.PageSize)
	assert.Equal(t, 5*time.Second, cfg.Roster.NotificationTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}
