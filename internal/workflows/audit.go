package workflows

import (
	"github.com/igor47/dcsm/internal/audit"
	"github.com/igor47/dcsm/internal/configs"
)

// logOutcome appends the command's audit record when auditing is configured.
func logOutcome(cfg *configs.Config, op string, files int, err error) {
	if cfg.AuditFile == "" {
		return
	}

	entry := audit.Entry{Operation: op, Outcome: audit.OutcomeSuccess, Files: files}
	if err != nil {
		entry.Outcome = audit.OutcomeFailure
		entry.Detail = err.Error()
	}
	audit.Log(cfg.AuditFile, entry)
}
