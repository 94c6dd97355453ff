// Package config loads, merges and validates the client configuration.
//
// Configuration is assembled from several sources in priority order
// (earlier sources win; later sources only fill fields still empty):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry point is [GetConfig], which merges all sources and
// validates the resulting [Config] before the application starts.
package config
