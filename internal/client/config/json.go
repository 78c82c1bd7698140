package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/crownstore/internal/flagx"
	"github.com/dmitrijs2005/crownstore/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// use timex.Duration, so they can be strings like "300s" or integer
// nanoseconds.
type JsonConfig struct {
	StoreBackend string `json:"store_backend"`
	DatabasePath string `json:"database_path"`
	RedisAddr    string `json:"redis_addr"`
	RedisPrefix  string `json:"redis_prefix"`

	SessionTTL    timex.Duration `json:"session_ttl"`
	RememberMeTTL timex.Duration `json:"remember_me_ttl"`
	ResetOTPTTL   timex.Duration `json:"reset_otp_ttl"`

	Environment string `json:"environment"`
	LogFormat   string `json:"log_format"`
	LogLevel    string `json:"log_level"`

	SendGridAPIKey string `json:"sendgrid_api_key"`
	MailFrom       string `json:"mail_from"`
	MailFromName   string `json:"mail_from_name"`
}

func overlay[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag nothing is loaded. Keys missing from
// the file keep their current values. Read and unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFilePath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.StoreBackend, jc.StoreBackend)
	overlay(&cfg.DatabasePath, jc.DatabasePath)
	overlay(&cfg.RedisAddr, jc.RedisAddr)
	overlay(&cfg.RedisPrefix, jc.RedisPrefix)

	overlay(&cfg.SessionTTL, jc.SessionTTL.Duration)
	overlay(&cfg.RememberMeTTL, jc.RememberMeTTL.Duration)
	overlay(&cfg.ResetOTPTTL, jc.ResetOTPTTL.Duration)

	overlay(&cfg.Environment, jc.Environment)
	overlay(&cfg.LogFormat, jc.LogFormat)
	overlay(&cfg.LogLevel, jc.LogLevel)

	overlay(&cfg.SendGridAPIKey, jc.SendGridAPIKey)
	overlay(&cfg.MailFrom, jc.MailFrom)
	overlay(&cfg.MailFromName, jc.MailFromName)
}
