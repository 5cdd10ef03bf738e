package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/postmarkit/pkg/validate"
)

var errRejected = errors.New("rejected")

var checkSenderCmd = &cobra.Command{
	Use:   "check-sender <address|hostname>",
	Short: "Report whether an address or domain may send through Postmark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		ok, err := a.senders.IsPermittedSender(ctx, args[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is not a permitted sender\n", args[0])
			return errRejected
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is a permitted sender\n", args[0])
		return nil
	},
}

var checkSuppressedCmd = &cobra.Command{
	Use:   "check-suppressed <address>",
	Short: "Report whether Postmark suppresses an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		err = validate.ValidateString(ctx, args[0], validate.NotSuppressed(a.suppressions))
		if failure, ok := validate.AsFailure(err); ok {
			for _, v := range failure.Violations {
				fmt.Fprintln(cmd.OutOrStdout(), v.Message)
			}
			return errRejected
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is deliverable\n", args[0])
		return nil
	},
}
