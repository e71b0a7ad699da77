// Package config resolves the agent's runtime settings.
//
// # Resolution Order
//
// Every named setting is looked up in three places, first match wins:
//
//  1. An environment variable (e.g. REVOCATION_PORT). Empty counts as unset.
//  2. The configuration file, by section and key. The file is named by
//     KEYLIME_CONFIG and defaults to /etc/keylime.conf.
//  3. The compiled-in Constants record, for values that have a default.
//
// The file is loaded and parsed on every call. Nothing is cached, so a
// change on disk is visible to the next lookup.
//
// # File Formats
//
// Files ending in .yaml or .yml are read as YAML, where each top-level key
// is a section holding a mapping of values. Anything else is read as INI,
// the format keylime.conf ships in.
//
// # Optional Settings
//
// The agent contact address and port are optional. Their accessors run
// through SuppressNotFound, which turns every resolution error into "no
// value". A contact port that is present but not numeric is still an error.
package config
