package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
[mainConfig]
port = 9000

[jwtConfig]
secret = "file-secret"
accessTokenExpiry = 15

[corsConfig]
allowOrigins = ["https://mysic.app"]
`)
	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, conf.MainConfig.Port)
	assert.Equal(t, "0.0.0.0:9000", conf.Addr())
	assert.Equal(t, "file-secret", conf.JWTConfig.Secret)
	assert.Equal(t, 15*time.Minute, conf.TokenExpiry())
	assert.Equal(t, []string{"https://mysic.app"}, conf.CorsConfig.AllowOrigins)
	// 未配置的字段保留默认值
	assert.Equal(t, "HS256", conf.JWTConfig.Algorithm)
	assert.Equal(t, "channel", conf.KafkaConfig.MessageMode)
	assert.Equal(t, "mysql", conf.MysqlConfig.Driver)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[jwtConfig]
secret = "file-secret"
`)
	t.Setenv("MYSIC_JWT_SECRET", "env-secret")
	t.Setenv("MYSIC_DB_PORT", "3307")
	t.Setenv("MYSIC_CORS_ORIGINS", "https://a.example, https://b.example")

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", conf.JWTConfig.Secret)
	assert.Equal(t, 3307, conf.MysqlConfig.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, conf.CorsConfig.AllowOrigins)
}

func TestValidate(t *testing.T) {
	conf := Default()
	assert.Error(t, conf.Validate())

	conf.JWTConfig.Secret = "s"
	assert.NoError(t, conf.Validate())

	conf.KafkaConfig.MessageMode = "rabbit"
	assert.Error(t, conf.Validate())
}

func TestDSN(t *testing.T) {
	m := MysqlConfig{User: "u", Password: "p", Host: "db", Port: 3306, DatabaseName: "mysic"}
	assert.Equal(t, "u:p@tcp(db:3306)/mysic?charset=utf8mb4&parseTime=True&loc=Local", m.DSN())
}
