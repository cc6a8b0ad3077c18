// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Budget Analyzer contributors

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// structuredJSONConfig mirrors [StructuredConfig] for file-based
// configuration. It exists so duration values can be written as strings
// ("30s", "1m") in the file while the runtime type stays time.Duration.
type structuredJSONConfig struct {
	Logging Logging `json:"logging,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address,omitempty"`
		RequestTimeout Duration `json:"request_timeout,omitempty"`
	} `json:"server,omitempty"`
}

// parseJSON reads jsonFilePath and converts its contents into a
// *StructuredConfig layer for merging.
func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg structuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		Logging: jsonCfg.Logging,
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
	}, nil
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
