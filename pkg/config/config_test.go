package config

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCreds(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvHost, "")
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvPassword, "")
}

func TestLoadXMLTrimsFields(t *testing.T) {
	clearEnv(t)
	path := writeCreds(t, "esxi_credentials.xml", `
<credentials>
  <host> esx01.lab.local </host>
  <username>root</username>
  <password> s3cret </password>
</credentials>`)

	creds, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.Host != "esx01.lab.local" {
		t.Fatalf("host not trimmed: %q", creds.Host)
	}
	if creds.Username != "root" || creds.Password != "s3cret" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
}

func TestLoadYAMLByExtension(t *testing.T) {
	clearEnv(t)
	path := writeCreds(t, "creds.yaml", "host: esx02.lab.local:2222\nusername: monitor\npassword: hunter2\n")

	creds, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.Host != "esx02.lab.local:2222" || creds.Username != "monitor" || creds.Password != "hunter2" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeCreds(t, "creds.xml", `<credentials><host>stale</host><username>old</username><password>filepass</password></credentials>`)
	t.Setenv(EnvHost, "esx03")
	t.Setenv(EnvPassword, "envpass")

	creds, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.Host != "esx03" {
		t.Fatalf("env host should win, got %q", creds.Host)
	}
	if creds.Username != "old" {
		t.Fatalf("file username should survive, got %q", creds.Username)
	}
	if creds.Password != "envpass" {
		t.Fatalf("env password should win, got %q", creds.Password)
	}
}

func TestLoadEnvWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvHost, "esx04")
	t.Setenv(EnvUsername, "root")

	creds, err := Load(filepath.Join(t.TempDir(), "nonexistent.xml"))
	if err != nil {
		t.Fatalf("environment alone should satisfy load: %v", err)
	}
	if creds.Host != "esx04" || creds.Username != "root" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
	if creds.Password != "" {
		t.Fatalf("password should stay empty for the prompt path, got %q", creds.Password)
	}
}

func TestLoadMissingFileAndEnvFails(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.xml"))
	if err == nil {
		t.Fatalf("expected an error with no file and no environment")
	}
	if !strings.Contains(err.Error(), "host is required") {
		t.Fatalf("error should name the missing field, got %v", err)
	}
	if !strings.Contains(err.Error(), "credentials file") {
		t.Fatalf("error should mention the unreadable file, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("read error should stay in the wrap chain, got %v", err)
	}
}

func TestLoadLogsMissingDotEnv(t *testing.T) {
	clearEnv(t)
	var logged bytes.Buffer
	log.SetOutput(&logged)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	path := writeCreds(t, "creds.xml", `<credentials><host>esx01</host><username>root</username><password>x</password></credentials>`)
	if _, err := Load(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(logged.String(), "No .env file found") {
		t.Fatalf("expected a note about the absent .env, got %q", logged.String())
	}
}

func TestLoadRequiredFields(t *testing.T) {
	cases := []struct {
		name    string
		content string
		missing string
	}{
		{"noHost", `<credentials><username>root</username><password>x</password></credentials>`, "host is required"},
		{"noUsername", `<credentials><host>esx01</host><password>x</password></credentials>`, "username is required"},
		{"blankHost", `<credentials><host>   </host><username>root</username></credentials>`, "host is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeCreds(t, "creds.xml", tc.content))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), tc.missing) {
				t.Fatalf("expected %q in error, got %v", tc.missing, err)
			}
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	clearEnv(t)
	cases := []struct {
		name string
		file string
		body string
	}{
		{"xml", "creds.xml", "<credentials><host>unclosed"},
		{"yaml", "creds.yaml", "host: [unterminated\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeCreds(t, tc.file, tc.body)); err == nil {
				t.Fatalf("expected a parse error")
			}
		})
	}
}

func TestLoadMissingPasswordIsNotAnError(t *testing.T) {
	clearEnv(t)
	path := writeCreds(t, "creds.xml", `<credentials><host>esx01</host><username>root</username></credentials>`)
	creds, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.Password != "" {
		t.Fatalf("expected empty password, got %q", creds.Password)
	}
}
