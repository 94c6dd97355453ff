package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type JSONConfig struct {
	Adapter struct {
		Address        string   `json:"address"`
		APIKey         string   `json:"api_key"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Storage struct {
		Driver string `json:"driver"`
		Path   string `json:"path"`
	} `json:"storage,omitempty"`

	Sync struct {
		Debounce      Duration `json:"debounce"`
		RetryInterval Duration `json:"retry_interval"`
		LockTTL       Duration `json:"lock_ttl"`
	} `json:"sync,omitempty"`

	Session struct {
		LookupTimeout      Duration `json:"lookup_timeout"`
		VerificationWindow Duration `json:"verification_window"`
		RecheckDelay       Duration `json:"recheck_delay"`
	} `json:"session,omitempty"`

	Netcheck struct {
		ProbeURL      string   `json:"probe_url"`
		ProbeInterval Duration `json:"probe_interval"`
		ProbeTimeout  Duration `json:"probe_timeout"`
	} `json:"netcheck,omitempty"`
}

func parseJSON(jsonFilePath string) (*Config, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg JSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &Config{
		Adapter: Adapter{
			Address:        jsonCfg.Adapter.Address,
			APIKey:         jsonCfg.Adapter.APIKey,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Storage: Storage{
			Driver: jsonCfg.Storage.Driver,
			Path:   jsonCfg.Storage.Path,
		},
		Sync: Sync{
			Debounce:      time.Duration(jsonCfg.Sync.Debounce),
			RetryInterval: time.Duration(jsonCfg.Sync.RetryInterval),
			LockTTL:       time.Duration(jsonCfg.Sync.LockTTL),
		},
		Session: Session{
			LookupTimeout:      time.Duration(jsonCfg.Session.LookupTimeout),
			VerificationWindow: time.Duration(jsonCfg.Session.VerificationWindow),
			RecheckDelay:       time.Duration(jsonCfg.Session.RecheckDelay),
		},
		Netcheck: Netcheck{
			ProbeURL:      jsonCfg.Netcheck.ProbeURL,
			ProbeInterval: time.Duration(jsonCfg.Netcheck.ProbeInterval),
			ProbeTimeout:  time.Duration(jsonCfg.Netcheck.ProbeTimeout),
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
