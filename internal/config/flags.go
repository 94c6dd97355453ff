package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a backend address in format [host]:[port]
//	-api-key static API key for outbound requests
//	-request-timeout outbound request timeout (e.g., "10s")
//	-storage-driver local store driver: memory, bolt or sqlite
//	-d local store file path
//	-c/-config json file path with configs
//	-sync-debounce debounce before a local edit is pushed (e.g., "1200ms")
//	-retry-interval cadence of the background retry job (e.g., "30s")
//	-lock-ttl lease duration of the push lock (e.g., "5s")
//	-session-timeout cap on a fresh session lookup (e.g., "5s")
//	-verification-window grace period after sign-up (e.g., "10m")
//	-probe-url connectivity probe endpoint
//	-probe-interval connectivity probe cadence (e.g., "10s")
func ParseFlags() *Config {
	var backendAddress NetAddress
	var apiKey string
	var requestTimeout time.Duration
	var storageDriver string
	var storagePath string
	var jsonConfigPath string
	var syncDebounce time.Duration
	var retryInterval time.Duration
	var lockTTL time.Duration
	var sessionTimeout time.Duration
	var verificationWindow time.Duration
	var probeURL string
	var probeInterval time.Duration

	flag.Var(&backendAddress, "a", "Net address host:port")
	flag.StringVar(&apiKey, "api-key", "", "Static API key")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 10s)")
	flag.StringVar(&storageDriver, "storage-driver", "", "Store driver: memory, bolt or sqlite")
	flag.StringVar(&storagePath, "d", "", "Local store file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&syncDebounce, "sync-debounce", 0, "Debounce before a local edit is pushed (e.g., 1200ms)")
	flag.DurationVar(&retryInterval, "retry-interval", 0, "Retry job cadence (e.g., 30s)")
	flag.DurationVar(&lockTTL, "lock-ttl", 0, "Push lock lease (e.g., 5s)")
	flag.DurationVar(&sessionTimeout, "session-timeout", 0, "Session lookup cap (e.g., 5s)")
	flag.DurationVar(&verificationWindow, "verification-window", 0, "Sign-up verification grace period (e.g., 10m)")
	flag.StringVar(&probeURL, "probe-url", "", "Connectivity probe endpoint")
	flag.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe cadence (e.g., 10s)")

	flag.Parse()

	return &Config{
		Adapter: Adapter{
			Address:        backendAddress.String(),
			APIKey:         apiKey,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			Driver: storageDriver,
			Path:   storagePath,
		},
		Sync: Sync{
			Debounce:      syncDebounce,
			RetryInterval: retryInterval,
			LockTTL:       lockTTL,
		},
		Session: Session{
			LookupTimeout:      sessionTimeout,
			VerificationWindow: verificationWindow,
		},
		Netcheck: Netcheck{
			ProbeURL:      probeURL,
			ProbeInterval: probeInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
