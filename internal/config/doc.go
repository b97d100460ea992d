// Package config provides configuration structures and utilities for waybackrecon.
// It defines the options shared by the collect, endpoints and params commands,
// loads the optional .waybackrecon YAML file and reads domain list files.
package config
