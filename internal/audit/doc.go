// Package audit appends one JSON Lines record per DCSM invocation.
//
// Auditing is optional: it is active only when DCSM_AUDIT_FILE is set.
// Each record carries a timestamp, a UUID run identifier, the command verb,
// and the outcome. Append failures are swallowed; a startup run never fails
// because its audit record could not be written.
package audit
