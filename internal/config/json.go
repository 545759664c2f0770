package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for the JSON file source.
// Durations are accepted as strings ("30s") or integer nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		SyncRoot     string `json:"sync_root"`
		CommitAuthor string `json:"commit_author"`
		Version      string `json:"version"`
	} `json:"app,omitempty"`

	Remote struct {
		Provider       string   `json:"provider"`
		BaseURL        string   `json:"base_url"`
		Owner          string   `json:"owner"`
		Repository     string   `json:"repository"`
		Branch         string   `json:"branch"`
		Token          string   `json:"token"`
		AppID          string   `json:"app_id"`
		InstallationID string   `json:"installation_id"`
		PrivateKeyPath string   `json:"private_key_path"`
		RequestTimeout Duration `json:"request_timeout"`
		RetryCount     int      `json:"retry_count"`
	} `json:"remote,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		AutoPushInterval Duration `json:"auto_push_interval"`
		PushConcurrency  int      `json:"push_concurrency"`
	} `json:"workers,omitempty"`

	Tracing struct {
		Enabled      bool    `json:"enabled"`
		Exporter     string  `json:"exporter"`
		OTLPEndpoint string  `json:"otlp_endpoint"`
		SampleRate   float64 `json:"sample_rate"`
	} `json:"tracing,omitempty"`

	Sanitize struct {
		Enabled       bool     `json:"enabled"`
		ExtraPatterns []string `json:"extra_patterns"`
	} `json:"sanitize,omitempty"`
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
			SyncRoot:     jsonCfg.App.SyncRoot,
			CommitAuthor: jsonCfg.App.CommitAuthor,
			Version:      jsonCfg.App.Version,
		},
		Remote: Remote{
			Provider:       jsonCfg.Remote.Provider,
			BaseURL:        jsonCfg.Remote.BaseURL,
			Owner:          jsonCfg.Remote.Owner,
			Repository:     jsonCfg.Remote.Repository,
			Branch:         jsonCfg.Remote.Branch,
			Token:          jsonCfg.Remote.Token,
			AppID:          jsonCfg.Remote.AppID,
			InstallationID: jsonCfg.Remote.InstallationID,
			PrivateKeyPath: jsonCfg.Remote.PrivateKeyPath,
			RequestTimeout: time.Duration(jsonCfg.Remote.RequestTimeout),
			RetryCount:     jsonCfg.Remote.RetryCount,
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
		Workers: Workers{
			AutoPushInterval: time.Duration(jsonCfg.Workers.AutoPushInterval),
			PushConcurrency:  jsonCfg.Workers.PushConcurrency,
		},
		Tracing: Tracing{
			Enabled:      jsonCfg.Tracing.Enabled,
			Exporter:     jsonCfg.Tracing.Exporter,
			OTLPEndpoint: jsonCfg.Tracing.OTLPEndpoint,
			SampleRate:   jsonCfg.Tracing.SampleRate,
		},
		Sanitize: Sanitize{
			Enabled:       jsonCfg.Sanitize.Enabled,
			ExtraPatterns: jsonCfg.Sanitize.ExtraPatterns,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
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
