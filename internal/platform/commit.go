package platform

import (
	"strings"
)

// CommitType constants for semantic change reasons
const (
	CommitTypeFeat     = "feat"
	CommitTypeFix      = "fix"
	CommitTypeDocs     = "docs"
	CommitTypeStyle    = "style"
	CommitTypeRefactor = "refactor"
	CommitTypePerf     = "perf"
	CommitTypeTest     = "test"
	CommitTypeChore    = "chore"
)

const footer = "Powered-by: Pocket"

// FormatChangeReason builds a Conventional Commit message.
// logic:
//
//	<type>(<scope>): <subject>
//
//	<body>
//
//	Powered-by: Pocket
func FormatChangeReason(ctype, scope, subject, body string) string {
	var sb strings.Builder

	// Header
	if ctype == "" {
		ctype = CommitTypeChore // Default fallback if empty, though CLI might enforce validation
	}
	sb.WriteString(ctype)

	if scope != "" {
		sb.WriteString("(")
		sb.WriteString(scope)
		sb.WriteString(")")
	}

	sb.WriteString(": ")
	sb.WriteString(subject)

	// Body
	if body != "" {
		sb.WriteString("\n\n")
		sb.WriteString(strings.TrimSpace(body))
	}

	// Footer
	sb.WriteString("\n\n")
	sb.WriteString(footer)

	return sb.String()
}

// AppendFooter appends the Pocket footer to an arbitrary message if not present.
// Used for free-form -m "msg" reasons.
func AppendFooter(msg string) string {
	if strings.Contains(msg, footer) {
		return msg
	}

	// Ensure we don't glue it to the last line
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	// Ensure we have a blank line separation if it looks like a one-liner
	// If it's multi-line, we still want a blank line before footer standardly
	if !strings.HasSuffix(msg, "\n\n") {
		msg += "\n"
	}

	return msg + footer
}
