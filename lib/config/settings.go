package config

import (
	"strconv"

	"github.com/go-i2p/logger"
)

// Setting binds a named setting to its location in the configuration file
// and the environment variable that overrides it.
type Setting struct {
	Name    string
	Section string
	Key     string
	Env     string
	// Optional settings resolve through SuppressNotFound.
	Optional bool
}

var (
	RevocationIPSetting     = Setting{Name: "revocation_ip", Section: "general", Key: "receive_revocation_ip", Env: "REVOCATION_IP"}
	RevocationPortSetting   = Setting{Name: "revocation_port", Section: "general", Key: "receive_revocation_port", Env: "REVOCATION_PORT"}
	CloudAgentIPSetting     = Setting{Name: "cloudagent_ip", Section: "cloud_agent", Key: "cloudagent_ip", Env: "CLOUDAGENT_IP"}
	CloudAgentPortSetting   = Setting{Name: "cloudagent_port", Section: "cloud_agent", Key: "cloudagent_port", Env: "CLOUDAGENT_PORT"}
	RegistrarIPSetting      = Setting{Name: "registrar_ip", Section: "cloud_agent", Key: "registrar_ip", Env: "REGISTRAR_IP"}
	RegistrarPortSetting    = Setting{Name: "registrar_port", Section: "cloud_agent", Key: "registrar_port", Env: "REGISTRAR_PORT"}
	AgentContactIPSetting   = Setting{Name: "agent_contact_ip", Section: "cloud_agent", Key: "agent_contact_ip", Env: "KEYLIME_AGENT_CONTACT_IP", Optional: true}
	AgentContactPortSetting = Setting{Name: "agent_contact_port", Section: "cloud_agent", Key: "agent_contact_port", Env: "KEYLIME_AGENT_CONTACT_PORT", Optional: true}
)

// Settings lists every named setting in display order.
var Settings = []Setting{
	RevocationIPSetting,
	RevocationPortSetting,
	CloudAgentIPSetting,
	CloudAgentPortSetting,
	RegistrarIPSetting,
	RegistrarPortSetting,
	AgentContactIPSetting,
	AgentContactPortSetting,
}

// Resolve looks the setting up through GetWithEnvOverride.
func (r *Resolver) Resolve(s Setting) (string, error) {
	return r.GetWithEnvOverride(s.Section, s.Key, s.Env)
}

// SuppressNotFound is the policy applied to optional settings: any
// resolution error, whatever its cause, becomes "no value". Callers cannot
// tell a missing file from a missing key.
func SuppressNotFound(value string, err error) (string, bool) {
	if err != nil {
		log.WithFields(logger.Fields{
			"at":     "SuppressNotFound",
			"reason": "optional_setting_unresolved",
			"error":  err.Error(),
		}).Debug("optional setting treated as unset")
		return "", false
	}
	return value, true
}

// RevocationIP returns the revocation notifier address.
func (r *Resolver) RevocationIP() (string, error) {
	return r.Resolve(RevocationIPSetting)
}

// RevocationPort returns the revocation notifier port.
func (r *Resolver) RevocationPort() (string, error) {
	return r.Resolve(RevocationPortSetting)
}

// CloudAgentIP returns the address the agent listens on.
func (r *Resolver) CloudAgentIP() (string, error) {
	return r.Resolve(CloudAgentIPSetting)
}

// CloudAgentPort returns the port the agent listens on.
func (r *Resolver) CloudAgentPort() (string, error) {
	return r.Resolve(CloudAgentPortSetting)
}

// RegistrarIP returns the registrar address.
func (r *Resolver) RegistrarIP() (string, error) {
	return r.Resolve(RegistrarIPSetting)
}

// RegistrarPort returns the registrar port.
func (r *Resolver) RegistrarPort() (string, error) {
	return r.Resolve(RegistrarPortSetting)
}

// AgentContactIP returns the address advertised to the verifier, if one is
// configured.
func (r *Resolver) AgentContactIP() (string, bool) {
	return SuppressNotFound(r.Resolve(AgentContactIPSetting))
}

// AgentContactPort returns the port advertised to the verifier. A missing
// setting yields ok == false and no error; a value that is not an unsigned
// 32-bit integer is a configuration error.
func (r *Resolver) AgentContactPort() (port uint32, ok bool, err error) {
	s, ok := SuppressNotFound(r.Resolve(AgentContactPortSetting))
	if !ok {
		return 0, false, nil
	}

	n, perr := strconv.ParseUint(s, 10, 32)
	if perr != nil {
		cerr := &ConfigError{
			Section: AgentContactPortSetting.Section,
			Key:     AgentContactPortSetting.Key,
			Reason:  "cannot parse " + strconv.Quote(s) + " as a port number",
			Err:     perr,
		}
		if r.getenv(AgentContactPortSetting.Env) != "" {
			cerr.Env = AgentContactPortSetting.Env
		} else {
			cerr.File = r.ConfigPath()
		}
		return 0, false, cerr
	}
	return uint32(n), true, nil
}
