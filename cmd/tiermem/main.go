package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
	"tiermem/pkg/collector/inventory"
	"tiermem/pkg/collector/tierstats"
	"tiermem/pkg/config"
	"tiermem/pkg/remote"
	"tiermem/pkg/report"
	"tiermem/pkg/ui"
)

// Build info
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// stdout allows tests to capture the run's product stream. Logs go to stderr.
var stdout io.Writer = os.Stdout

const (
	defaultConfigPath = "esxi_credentials.xml"
	defaultTimeout    = 15 * time.Second
)

// Exit codes, so shell callers can tell a config mistake from a transport
// failure and from an idle host.
const (
	exitOK         = 0
	exitConfig     = 1
	exitConnection = 2
	exitNoVMs      = 3
)

type runConfig struct {
	configPath  string
	timeout     time.Duration
	showVersion bool
}

func parseConfig() runConfig {
	configPath := flag.String("config", defaultConfigPath, "path to the credentials file (.xml, .yaml or .yml)")
	timeout := flag.Duration("timeout", defaultTimeout, "SSH connect timeout (e.g. 10s, 1m)")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	cfg := runConfig{
		configPath:  strings.TrimSpace(*configPath),
		timeout:     *timeout,
		showVersion: *showVersion,
	}
	if cfg.configPath == "" {
		cfg.configPath = defaultConfigPath
	}
	if cfg.timeout <= 0 {
		cfg.timeout = defaultTimeout
	}
	return cfg
}

func main() {
	cfg := parseConfig()
	if cfg.showVersion {
		fmt.Printf("tiermem %s (%s) built on %s\n", version, commit, date)
		return
	}
	os.Exit(run(cfg))
}

func run(cfg runConfig) int {
	creds, err := config.Load(cfg.configPath)
	if err != nil {
		log.Printf("loading credentials: %v", err)
		return exitConfig
	}
	if creds.Password == "" {
		password, err := promptPassword(creds.Username, creds.Host)
		if err != nil {
			log.Printf("reading password: %v", err)
			return exitConfig
		}
		creds.Password = password
	}

	log.Printf("connecting to %s as %s", creds.Host, creds.Username)
	client, err := remote.Dial(creds.Host, creds.Username, creds.Password, cfg.timeout)
	if err != nil {
		log.Printf("%v", err)
		return exitConnection
	}
	defer client.Close()

	mapping, err := inventory.Collect(client)
	if err != nil {
		log.Printf("%v", err)
		return exitConnection
	}
	if len(mapping) == 0 {
		fmt.Fprintln(stdout, "No VMs are currently running on the ESXi host.")
		return exitNoVMs
	}

	lines, err := tierstats.Collect(client)
	if err != nil {
		log.Printf("%v", err)
		return exitConnection
	}

	rows := report.ParseRows(report.FilterDataRows(report.Substitute(lines, mapping)))
	fmt.Fprintln(stdout, "Memory stats:")
	fmt.Fprint(stdout, ui.Table(mapping, rows))
	return exitOK
}

// promptPassword asks on the terminal when the credentials carry no password.
// Without a terminal there is nothing to ask, so that is a config mistake.
func promptPassword(user, host string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no password configured and stdin is not a terminal")
	}
	fmt.Fprintf(os.Stderr, "Password for %s@%s: ", user, host)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("empty password")
	}
	return string(raw), nil
}
