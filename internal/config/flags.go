package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-log-level base severity for request/response records
//	-base-path routing prefix stripped before path pattern matching
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var logLevel string
	var basePath string

	flag.StringVar(&serverAddress, "a", "", "Net address host:port")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&logLevel, "log-level", "", "Base log level for request records")
	flag.StringVar(&basePath, "base-path", "", "Routing prefix stripped before pattern matching")

	flag.Parse()

	return &StructuredConfig{
		Logging: Logging{
			Level:    logLevel,
			BasePath: basePath,
		},
		Server: Server{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}
