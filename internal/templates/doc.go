// Package templates discovers template files, substitutes secret
// placeholders, and materializes the rendered output.
//
// A template is any file ending in .template under one of the configured
// directories (searched recursively). Its content may reference secrets as
// $DCSM{name} or $DCSM_NAME; $$DCSM escapes a literal sigil. The rendered
// file is written next to the template with the suffix stripped, carrying
// the template's permission bits and ownership.
//
// The batch is all-or-nothing: every template is rendered in memory before
// the first write, so a missing secret anywhere aborts the run with no
// output file created or modified. Individual writes are atomic
// (temp file + rename), and rendering injects nothing non-deterministic,
// so re-running over unchanged inputs produces byte-identical output.
package templates
