package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/flagx"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	RecordsEndpointPA string `json:"records_endpoint_pa"`
	RecordsEndpointFL string `json:"records_endpoint_fl"`
	EmployeesEndpoint string `json:"employees_endpoint"`
	SheetID           string `json:"sheet_id"`
	BearerToken       string `json:"bearer_token"`
	BackupDSN         string `json:"backup_dsn"`

	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	RetryDelay          timex.Duration `json:"retry_delay"`
	DebounceWindow      timex.Duration `json:"debounce_window"`
	RequestTimeout      timex.Duration `json:"request_timeout"`

	ValidatePush *bool `json:"validate_push"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies fields into the provided Config; absent fields keep the value
//     already in cfg, so defaults survive a partial file.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
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

	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setDuration := func(dst *time.Duration, v timex.Duration) {
		if v.Duration != 0 {
			*dst = v.Duration
		}
	}

	setString(&cfg.RecordsEndpointPA, jc.RecordsEndpointPA)
	setString(&cfg.RecordsEndpointFL, jc.RecordsEndpointFL)
	setString(&cfg.EmployeesEndpoint, jc.EmployeesEndpoint)
	setString(&cfg.SheetID, jc.SheetID)
	setString(&cfg.BearerToken, jc.BearerToken)
	setString(&cfg.BackupDSN, jc.BackupDSN)

	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)
	setDuration(&cfg.RetryDelay, jc.RetryDelay)
	setDuration(&cfg.DebounceWindow, jc.DebounceWindow)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)

	if jc.ValidatePush != nil {
		cfg.ValidatePush = *jc.ValidatePush
	}
}
