package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations, so that operators can keep a readable config
// file alongside environment variables and flags.
type StructuredJSONConfig struct {
	App struct {
		PasswordHashKey string   `json:"password_hash_key"`
		TokenSignKey    string   `json:"token_sign_key"`
		TokenIssuer     string   `json:"token_issuer"`
		TokenDuration   Duration `json:"token_duration"`
		CipherSuite     string   `json:"cipher_suite"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Unlock struct {
		SessionTTL    Duration `json:"session_ttl"`
		MaxAttempts   int      `json:"max_attempts"`
		AttemptWindow Duration `json:"attempt_window"`
		PerAddress    bool     `json:"per_address"`
	} `json:"unlock,omitempty"`

	Reset struct {
		TokenTTL      Duration `json:"token_ttl"`
		MaxRequests   int      `json:"max_requests"`
		RequestWindow Duration `json:"request_window"`
		SMTP          struct {
			Host     string `json:"host"`
			Port     int    `json:"port"`
			Username string `json:"username"`
			Password string `json:"password"`
			From     string `json:"from"`
		} `json:"smtp,omitempty"`
	} `json:"reset,omitempty"`

	Workers struct {
		TokenPurgeInterval   Duration `json:"token_purge_interval"`
		LimiterSweepInterval Duration `json:"limiter_sweep_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			PasswordHashKey: jsonCfg.App.PasswordHashKey,
			TokenSignKey:    jsonCfg.App.TokenSignKey,
			TokenIssuer:     jsonCfg.App.TokenIssuer,
			TokenDuration:   time.Duration(jsonCfg.App.TokenDuration),
			CipherSuite:     jsonCfg.App.CipherSuite,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Unlock: Unlock{
			SessionTTL:    time.Duration(jsonCfg.Unlock.SessionTTL),
			MaxAttempts:   jsonCfg.Unlock.MaxAttempts,
			AttemptWindow: time.Duration(jsonCfg.Unlock.AttemptWindow),
			PerAddress:    jsonCfg.Unlock.PerAddress,
		},
		Reset: Reset{
			TokenTTL:      time.Duration(jsonCfg.Reset.TokenTTL),
			MaxRequests:   jsonCfg.Reset.MaxRequests,
			RequestWindow: time.Duration(jsonCfg.Reset.RequestWindow),
			SMTP: SMTP{
				Host:     jsonCfg.Reset.SMTP.Host,
				Port:     jsonCfg.Reset.SMTP.Port,
				Username: jsonCfg.Reset.SMTP.Username,
				Password: jsonCfg.Reset.SMTP.Password,
				From:     jsonCfg.Reset.SMTP.From,
			},
		},
		Workers: Workers{
			TokenPurgeInterval:   time.Duration(jsonCfg.Workers.TokenPurgeInterval),
			LimiterSweepInterval: time.Duration(jsonCfg.Workers.LimiterSweepInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
