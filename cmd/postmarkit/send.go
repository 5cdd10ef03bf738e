package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/postmarkit/pkg/mail"
	"github.com/dmitrymomot/postmarkit/pkg/transport"
	"github.com/dmitrymomot/postmarkit/pkg/validate"
)

var (
	sendVia    string
	sendDryRun bool
)

var sendCmd = &cobra.Command{
	Use:   "send <file|->",
	Short: "Validate and send an RFC 5322 message",
	Long: "Parses a raw message, checks it against Postmark's rules, the " +
		"sender signatures and the suppression list, then sends it.",
	Args: cobra.ExactArgs(1),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringVar(&sendVia, "via", "postmark", "delivery provider: postmark or resend")
	sendCmd.Flags().BoolVar(&sendDryRun, "dry-run", false, "validate and print the payload without sending")
}

func runSend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var in io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	msg, err := mail.Parse(in)
	if err != nil {
		return err
	}
	if msg.Capabilities == nil {
		msg.Capabilities = mail.NewCapabilities()
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	checks := []validate.MessageCheck{
		validate.FromAddress(a.senders),
		validate.Recipients(a.suppressions),
	}

	out := cmd.OutOrStdout()
	if sendDryRun {
		if err := validate.NewMessageValidator(checks...).Validate(ctx, msg); err != nil {
			return err
		}
		payload, err := transport.Translate(msg)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	tr, err := a.transport(sendVia, checks...)
	if err != nil {
		return err
	}
	res, err := tr.SendWithResult(ctx, msg)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "sent %s to %s\n", res.MessageID, res.To)
	return nil
}
