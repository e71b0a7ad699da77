package config

// Constants contains the compiled-in values of the agent. It is built once
// by DefaultConstants at process start and handed to whatever needs it,
// so tests can substitute their own record.
type Constants struct {
	// APIVersion is the protocol version tag used in agent URLs
	// Default: v1.0
	APIVersion string

	// StubVTPM and StubIMA replace the vTPM and IMA backends with stubs
	StubVTPM bool
	StubIMA  bool

	// TPMDataPCR is the PCR extended with the bootstrap key payload
	// Default: 16
	TPMDataPCR int

	// IMAPCR is the PCR the kernel extends with IMA measurements
	// Default: 10
	IMAPCR int

	// DefaultConfig is consulted when ConfigEnv is unset or empty
	// Default: /etc/keylime.conf
	DefaultConfig string

	// ConfigEnv names the environment variable overriding DefaultConfig
	// Default: KEYLIME_CONFIG
	ConfigEnv string

	RSAPublicKeyExportable string

	// TPMToolsPath is where the tpm2-tools binaries live
	// Default: /usr/local/bin/
	TPMToolsPath string

	// IMAML is the kernel's ASCII runtime measurement list
	IMAML string

	Key     string
	WorkDir string

	// RevCert is the file name of the revocation notifier certificate
	// generated by the tenant
	RevCert string

	// MountSecure mounts the secure tmpfs; false only in development setups
	MountSecure bool

	AgentUUIDLen int
	AuthTagLen   int
	KeyLen       int
	AESBlockSize int
}

// DefaultConstants returns the production constant record.
func DefaultConstants() Constants {
	return Constants{
		APIVersion:             "v1.0",
		StubVTPM:               false,
		StubIMA:                true,
		TPMDataPCR:             16,
		IMAPCR:                 10,
		DefaultConfig:          "/etc/keylime.conf",
		ConfigEnv:              "KEYLIME_CONFIG",
		RSAPublicKeyExportable: "rsa placeholder",
		TPMToolsPath:           "/usr/local/bin/",
		IMAML:                  "/sys/kernel/security/ima/ascii_runtime_measurements",
		Key:                    "secret",
		WorkDir:                "/tmp",
		RevCert:                "RevocationNotifier-cert.crt",
		MountSecure:            true,
		AgentUUIDLen:           36,
		AuthTagLen:             96,
		KeyLen:                 32,
		AESBlockSize:           16,
	}
}

// IMAMeasurementListPath returns the location of the IMA runtime
// measurement list consumed by the measurement-log parser.
func (c Constants) IMAMeasurementListPath() string {
	return c.IMAML
}
