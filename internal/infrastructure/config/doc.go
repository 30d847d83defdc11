// Package config handles loading and validating dashboard client configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// Security Considerations:
//   - The local state database holds the session token; keep storage.path
//     on a filesystem with restricted permissions
//   - Credentials are never part of the config file: they are supplied
//     interactively or via flags at login
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.API.BaseURL)
package config
