// Package logger provides leveled logging for DCSM commands.
//
// Verbosity is controlled by the --verbose and --debug flags. Without
// flags, only errors and critical warnings are shown, which keeps the
// output of a successful startup run to a single summary line.
//
//	Logger.Infof()       // Shown with --verbose or --debug
//	Logger.Debugf()      // Shown only with --debug
//	Logger.Warnf()       // Shown with --verbose or --debug
//	Logger.WarnfAlways() // Always shown
//	Logger.Errorf()      // Always shown
//
// Commands create a logger once from their flags and pass it down; no
// package-level logger state exists.
package logger
