package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, "quote-engine", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "$", cfg.Pricing.CurrencySymbol)
	assert.True(t, cfg.Pricing.DefaultTaxRate.IsZero())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Nil(t, cfg.CORS.AllowedHeaders)
	assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	assert.False(t, cfg.App.IsProduction())
	assert.Equal(t, "none", cfg.Printer.Type)
	assert.Equal(t, 32, cfg.Printer.CharWidth)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")
	v.Set("CURRENCY_SYMBOL", "KES ")
	v.Set("DEFAULT_TAX_RATE", "16")
	v.Set("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	v.Set("PRINTER_TYPE", "network")
	v.Set("PRINTER_ADDRESS", "10.0.0.5:9100")

	cfg := fromViper(v)

	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, "KES ", cfg.Pricing.CurrencySymbol)
	assert.True(t, cfg.Pricing.DefaultTaxRate.Equal(decimal.NewFromInt(16)))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "network", cfg.Printer.Type)
	assert.Equal(t, "10.0.0.5:9100", cfg.Printer.Address)
}

func TestFromViper_InvalidTaxRateFallsBack(t *testing.T) {
	v := viper.New()
	v.Set("DEFAULT_TAX_RATE", "-5")

	cfg := fromViper(v)

	assert.True(t, cfg.Pricing.DefaultTaxRate.IsZero())
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "5432", Name: "q", User: "u", Password: "p", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=q port=5432 sslmode=disable TimeZone=UTC", db.DSN())
}
