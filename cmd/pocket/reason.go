package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/pocket"
)

var (
	reasonMsg   string
	reasonType  string
	reasonScope string
)

// registerReasonFlags wires the shared change-reason flags onto a
// mutating command. Only one command runs per invocation, so the vars can
// be shared.
func registerReasonFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&reasonMsg, "message", "m", "", "Change reason (audit note)")
	cmd.Flags().StringVarP(&reasonType, "type", "t", "", "Change type (feat, fix, etc)")
	cmd.Flags().StringVarP(&reasonScope, "scope", "s", "", "Change scope")
}

// withReason attaches a change description to ctx for versioned storage.
// Explicit flags win; otherwise a semantic default is built from the
// operation.
func withReason(ctx context.Context, defaultType, defaultScope, subject string) context.Context {
	ctype := defaultType
	if reasonType != "" {
		ctype = reasonType
	}
	scope := defaultScope
	if reasonScope != "" {
		scope = reasonScope
	}

	var msg string
	switch {
	case reasonMsg != "" && reasonType == "" && reasonScope == "":
		// Free-form mode: take the message as-is, just ensure the footer
		msg = pocket.AppendFooter(reasonMsg)
	case reasonMsg != "":
		msg = pocket.FormatChangeReason(ctype, scope, reasonMsg, "")
	default:
		msg = pocket.FormatChangeReason(ctype, scope, subject, "")
	}
	return pocket.WithChangeReason(ctx, msg)
}
