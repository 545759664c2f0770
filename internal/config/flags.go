package config

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// Flags is the command-line configuration source. Values are bound to a
// flag set by [BindFlags] and read back with [Flags.Config] once the flag
// set has been parsed.
type Flags struct {
	cfg     StructuredConfig
	address NetAddress
}

// BindFlags registers all configuration flags as persistent flags on fs.
//
// Flags:
//
//	-a/--address control API address in format [host]:[port]
//	-d/--dsn database DSN (SQLite path or postgres:// URL)
//	-c/--config json file path with configs
//	--root remote sync root directory
//	--provider github|gitlab
//	--base-url provider API root
//	--owner repository owner (GitHub)
//	--repo repository name or GitLab project
//	--branch target branch
//	--token access token
//	--request-timeout remote request timeout (e.g., "30s", "1m")
//	--retries retries on rate limiting and gateway errors
//	--auto-push auto-push interval of the daemon (e.g. "5m")
//	--concurrency push-all concurrency
//	--sanitize push public copies with sensitive values blanked
//	--trace tracing exporter (none|stdout|otlp)
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}

	fs.VarP(&f.address, "address", "a", "Control API address host:port")
	fs.StringVarP(&f.cfg.Storage.DB.DSN, "dsn", "d", "", "Database DSN")
	fs.StringVarP(&f.cfg.JSONFilePath, "config", "c", "", "JSON config file path")
	fs.StringVar(&f.cfg.App.SyncRoot, "root", "", "Remote sync root directory")
	fs.StringVar(&f.cfg.Remote.Provider, "provider", "", "Remote provider (github|gitlab)")
	fs.StringVar(&f.cfg.Remote.BaseURL, "base-url", "", "Remote API base URL")
	fs.StringVar(&f.cfg.Remote.Owner, "owner", "", "Repository owner")
	fs.StringVar(&f.cfg.Remote.Repository, "repo", "", "Repository name or project id")
	fs.StringVar(&f.cfg.Remote.Branch, "branch", "", "Target branch")
	fs.StringVar(&f.cfg.Remote.Token, "token", "", "Access token")
	fs.DurationVar(&f.cfg.Remote.RequestTimeout, "request-timeout", 0, "Remote request timeout (e.g., 30s, 1m)")
	fs.IntVar(&f.cfg.Remote.RetryCount, "retries", 0, "Retries on rate limiting and gateway errors")
	fs.DurationVar(&f.cfg.Workers.AutoPushInterval, "auto-push", 0, "Auto-push interval (e.g., 5m)")
	fs.IntVar(&f.cfg.Workers.PushConcurrency, "concurrency", 0, "Push-all concurrency")
	fs.BoolVar(&f.cfg.Sanitize.Enabled, "sanitize", false, "Blank sensitive values on push")
	fs.StringVar(&f.cfg.Tracing.Exporter, "trace", "", "Tracing exporter (none|stdout|otlp)")

	return f
}

// Config returns the flag values as a configuration source.
func (f *Flags) Config() *StructuredConfig {
	cfg := f.cfg
	cfg.Server.HTTPAddress = f.address.String()
	if cfg.Tracing.Exporter != "" && cfg.Tracing.Exporter != ExporterNone {
		cfg.Tracing.Enabled = true
	}
	return &cfg
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
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

	if port < 1 || port > 65535 {
		return errors.New("port number must be in 1..65535")
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
