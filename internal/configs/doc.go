// Package configs resolves the run configuration for a DCSM invocation.
//
// Inputs come from the environment (DCSM_KEYFILE, DCSM_SECRETS_FILE,
// DCSM_SOURCE_FILE, DCSM_AUDIT_FILE, and one DCSM_TEMPLATE_* entry per
// template directory), optionally layered over a TOML settings file named
// by DCSM_CONFIG. Environment entries always win over the file.
//
// Resolution happens exactly once at startup; the resulting Config value
// is read-only and passed by parameter into every component.
package configs
