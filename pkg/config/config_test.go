package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("REPORT_RECIPIENTS", " a@example.com, ,b@example.com ")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.App.Env)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Report.Recipients)
	assert.Equal(t, "fr-FR", cfg.Report.Locale)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 20, cfg.DB.MaxConns)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "caisse", Password: "p@ss/word", DBName: "caisse", SSLMode: "require"}
	assert.Equal(t, "postgres://caisse:p%40ss%2Fword@db:5432/caisse?sslmode=require", c.ConnectionString())

	c.DatabaseURL = "postgres://x@neon/db"
	assert.Equal(t, "postgres://x@neon/db", c.ConnectionString())
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:    AppConfig{Timezone: "Europe/Paris"},
			DB:     DBConfig{DatabaseURL: "postgres://localhost/caisse"},
			HTTP:   HTTPConfig{Port: 8080},
			Cron:   CronConfig{Secret: "s3cret"},
			Report: ReportConfig{Channel: ChannelSMTP, Recipients: []string{"a@example.com"}},
			SMTP:   SMTPConfig{Host: "smtp.example.com"},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"sin base de datos", func(c *Config) { c.DB = DBConfig{} }, "DATABASE_URL"},
		{"sin secreto cron", func(c *Config) { c.Cron.Secret = "" }, "CRON_SECRET"},
		{"smtp sin destinatarios", func(c *Config) { c.Report.Recipients = nil }, "REPORT_RECIPIENTS"},
		{"canal desconocido", func(c *Config) { c.Report.Channel = "fax" }, "REPORT_CHANNEL"},
		{"zona inválida", func(c *Config) { c.App.Timezone = "Mars/Olympus" }, "APP_TIMEZONE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
