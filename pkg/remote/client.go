// Package remote runs commands on the ESXi host over SSH.
package remote

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
)

const defaultPort = "22"

// Client is an authenticated SSH connection to the host. One Client serves the
// whole run; each Run opens its own session.
type Client struct {
	conn *ssh.Client
}

// Dial opens an SSH connection to host, which may carry an explicit port
// (":22" is assumed otherwise), authenticating with username and password.
// Host keys are accepted without verification; the tool targets lab hosts
// whose keys are not tracked anywhere.
func Dial(host, user, password string, timeout time.Duration) (*Client, error) {
	addr := hostPort(host)
	cfg := &ssh.ClientConfig{
		User: user,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
			ssh.KeyboardInteractive(answerWith(password)),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}
	conn, err := ssh.Dial("tcp", addr, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

// answerWith builds a keyboard-interactive handler that answers every
// challenge with the password. ESXi sshd frequently advertises only
// keyboard-interactive even when password logins are enabled.
func answerWith(password string) ssh.KeyboardInteractiveChallenge {
	return func(name, instruction string, questions []string, echos []bool) ([]string, error) {
		answers := make([]string, len(questions))
		for i := range answers {
			answers[i] = password
		}
		return answers, nil
	}
}

// Run executes one command on the host and returns its stdout and stderr
// split into lines. A nonzero remote exit status is not an error; stderr is
// the caller's signal that something went wrong on the far side. Only
// session-level failures (cannot open or sustain the session) return an error.
func (c *Client) Run(command string) (stdout, stderr []string, err error) {
	session, err := c.conn.NewSession()
	if err != nil {
		return nil, nil, fmt.Errorf("opening session: %w", err)
	}
	defer session.Close()

	var outBuf, errBuf bytes.Buffer
	session.Stdout = &outBuf
	session.Stderr = &errBuf

	runErr := session.Run(command)
	stdout = splitLines(outBuf.String())
	stderr = splitLines(errBuf.String())

	var exitErr *ssh.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		return stdout, stderr, fmt.Errorf("running %q: %w", command, runErr)
	}
	return stdout, stderr, nil
}

// Close releases the SSH connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// hostPort appends the default SSH port when host does not already carry one.
func hostPort(host string) string {
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	return net.JoinHostPort(strings.Trim(host, "[]"), defaultPort)
}

// splitLines breaks command output into lines, tolerating CRLF endings and a
// trailing newline. Empty output yields no lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
