package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testINI = `[general]
receive_revocation_ip = 127.0.0.1
receive_revocation_port = 8080

[cloud_agent]
cloudagent_ip = 0.0.0.0
cloudagent_port = 9002
registrar_ip = 10.0.0.5
registrar_port = 8890
`

// writeConfig writes content to a file named name in a fresh temp dir and
// returns its path.
func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// newTestResolver returns a Resolver whose environment is the given map
// instead of the process environment.
func newTestResolver(env map[string]string) *Resolver {
	r := NewResolver(DefaultConstants())
	r.Getenv = func(name string) string { return env[name] }
	return r
}

func TestConfigPathDefault(t *testing.T) {
	r := newTestResolver(nil)
	assert.Equal(t, "/etc/keylime.conf", r.ConfigPath())
}

func TestConfigPathEmptyEnvUsesDefault(t *testing.T) {
	r := newTestResolver(map[string]string{"KEYLIME_CONFIG": ""})
	assert.Equal(t, "/etc/keylime.conf", r.ConfigPath())
}

func TestConfigPathFromEnv(t *testing.T) {
	for _, p := range []string{"/tmp/testing.conf", "relative.conf", " "} {
		r := newTestResolver(map[string]string{"KEYLIME_CONFIG": p})
		assert.Equal(t, p, r.ConfigPath())
	}
}

// TestConfigPathProcessEnv exercises the default os.Getenv wiring.
func TestConfigPathProcessEnv(t *testing.T) {
	r := NewResolver(DefaultConstants())

	t.Setenv("KEYLIME_CONFIG", "")
	assert.Equal(t, "/etc/keylime.conf", r.ConfigPath())

	t.Setenv("KEYLIME_CONFIG", "/tmp/testing.conf")
	assert.Equal(t, "/tmp/testing.conf", r.ConfigPath())
}

func TestGetReturnsStoredValues(t *testing.T) {
	path := writeConfig(t, "keylime.conf", testINI)
	r := newTestResolver(map[string]string{"KEYLIME_CONFIG": path})

	testCases := []struct {
		section, key, want string
	}{
		{"general", "receive_revocation_ip", "127.0.0.1"},
		{"general", "receive_revocation_port", "8080"},
		{"cloud_agent", "cloudagent_ip", "0.0.0.0"},
		{"cloud_agent", "registrar_port", "8890"},
	}
	for _, tc := range testCases {
		t.Run(tc.section+"/"+tc.key, func(t *testing.T) {
			got, err := r.Get(tc.section, tc.key)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetMissingSection(t *testing.T) {
	path := writeConfig(t, "keylime.conf", testINI)
	r := newTestResolver(map[string]string{"KEYLIME_CONFIG": path})

	_, err := r.Get("registrar", "registrar_port")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))

	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "registrar", cerr.Section)
	assert.Equal(t, path, cerr.File)
	assert.Contains(t, err.Error(), "registrar")
	assert.Contains(t, err.Error(), path)
}

func TestGetMissingKey(t *testing.T) {
	path := writeConfig(t, "keylime.conf", testINI)
	r := newTestResolver(map[string]string{"KEYLIME_CONFIG": path})

	_, err := r.Get("general", "no_such_key")
	require.Error(t, err)
	assert.True(t, IsConfigError(err))

	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "general", cerr.Section)
	assert.Equal(t, "no_such_key", cerr.Key)
	assert.Contains(t, err.Error(), "no_such_key")
}

func TestGetMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.conf")
	r := newTestResolver(map[string]string{"KEYLIME_CONFIG": path})

	_, err := r.Get("general", "receive_revocation_port")
	require.Error(t, err)

	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, path, cerr.File)
	assert.Equal(t, "file not found", cerr.Reason)
	assert.NotNil(t, cerr.Unwrap())
}

func TestGetRereadsFileEachCall(t *testing.T) {
	path := writeConfig(t, "keylime.conf", testINI)
	r := newTestResolver(map[string]string{"KEYLIME_CONFIG": path})

	got, err := r.Get("general", "receive_revocation_port")
	require.NoError(t, err)
	assert.Equal(t, "8080", got)

	require.NoError(t, os.WriteFile(path, []byte("[general]\nreceive_revocation_port = 8181\n"), 0o600))

	got, err = r.Get("general", "receive_revocation_port")
	require.NoError(t, err)
	assert.Equal(t, "8181", got)
}

func TestGetYAML(t *testing.T) {
	path := writeConfig(t, "keylime.yaml", `
general:
  receive_revocation_port: 8080
  receive_revocation_ip: 127.0.0.1
cloud_agent:
  cloudagent_port: "9002"
version: 2
`)
	r := newTestResolver(map[string]string{"KEYLIME_CONFIG": path})

	got, err := r.Get("general", "receive_revocation_port")
	require.NoError(t, err)
	assert.Equal(t, "8080", got)

	got, err = r.Get("cloud_agent", "cloudagent_port")
	require.NoError(t, err)
	assert.Equal(t, "9002", got)

	// Scalars at the top level are not sections.
	_, err = r.Get("version", "anything")
	assert.True(t, IsConfigError(err))

	_, err = r.Get("cloud_agent", "registrar_ip")
	assert.True(t, IsConfigError(err))
}

func TestGetMalformedYAML(t *testing.T) {
	path := writeConfig(t, "keylime.yml", "general: [unterminated\n")
	r := newTestResolver(map[string]string{"KEYLIME_CONFIG": path})

	_, err := r.Get("general", "receive_revocation_port")
	require.Error(t, err)

	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "cannot load file", cerr.Reason)
}

func TestGetWithEnvOverrideEnvWins(t *testing.T) {
	testCases := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"file has different value", func(t *testing.T) string { return writeConfig(t, "keylime.conf", testINI) }},
		{"file absent", func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.conf") }},
		{"file malformed", func(t *testing.T) string { return writeConfig(t, "keylime.yaml", ": : :\n\t[") }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestResolver(map[string]string{
				"KEYLIME_CONFIG":  tc.path(t),
				"REVOCATION_PORT": "9090",
			})
			got, err := r.GetWithEnvOverride("general", "receive_revocation_port", "REVOCATION_PORT")
			require.NoError(t, err)
			assert.Equal(t, "9090", got)
		})
	}
}

func TestGetWithEnvOverrideFallsBackToFile(t *testing.T) {
	path := writeConfig(t, "keylime.conf", testINI)
	r := newTestResolver(map[string]string{
		"KEYLIME_CONFIG":  path,
		"REVOCATION_PORT": "",
	})

	got, err := r.GetWithEnvOverride("general", "receive_revocation_port", "REVOCATION_PORT")
	require.NoError(t, err)
	assert.Equal(t, "8080", got)
}

func TestGetYAMLSectionShapes(t *testing.T) {
	testCases := []struct {
		name       string
		content    string
		section    string
		key        string
		want       string
		wantReason string
	}{
		{
			name:    "non-string key in section",
			content: "cloud_agent:\n  80: x\n  registrar_ip: 1.2.3.4\n",
			section: "cloud_agent", key: "registrar_ip", want: "1.2.3.4",
		},
		{
			name:    "numeric key looked up by its text",
			content: "cloud_agent:\n  80: x\n",
			section: "cloud_agent", key: "80", want: "x",
		},
		{
			name:    "empty section is present",
			content: "general:\n",
			section: "general", key: "k", wantReason: "cannot find key",
		},
		{
			name:    "sequence is not a section",
			content: "general:\n  - a\n",
			section: "general", key: "k", wantReason: "cannot find section",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, "keylime.yaml", tc.content)
			r := newTestResolver(map[string]string{"KEYLIME_CONFIG": path})

			got, err := r.Get(tc.section, tc.key)
			if tc.wantReason == "" {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
				return
			}
			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tc.wantReason, cerr.Reason)
		})
	}
}

// TestGetINIValueVerbatim verifies values come back exactly as written in
// the file, with no comment stripping or interpolation.
func TestGetINIValueVerbatim(t *testing.T) {
	path := writeConfig(t, "keylime.conf", `[cloud_agent]
registrar_ip = 10.0.0.1
tpm_hash = sha256 # not a comment
x = %(registrar_ip)s
`)
	r := newTestResolver(map[string]string{"KEYLIME_CONFIG": path})

	got, err := r.Get("cloud_agent", "x")
	require.NoError(t, err)
	assert.Equal(t, "%(registrar_ip)s", got)

	got, err = r.Get("cloud_agent", "tpm_hash")
	require.NoError(t, err)
	assert.Equal(t, "sha256 # not a comment", got)
}
