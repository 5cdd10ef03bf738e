package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/postmarkit/pkg/dnsverify"
)

var (
	dnsReturnPath string
	dnsDKIMHost   string
	dnsDKIMValue  string
)

type dnsCheck struct {
	name string
	run  func() error
}

var dnsCmd = &cobra.Command{
	Use:   "dns <domain>",
	Short: "Check the SPF, Return-Path and DKIM records Postmark expects",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		v := dnsverify.New()
		out := cmd.OutOrStdout()

		checks := []dnsCheck{
			{"SPF", func() error { return v.SPF(ctx, args[0]) }},
			{"Return-Path", func() error { return v.ReturnPath(ctx, args[0], dnsReturnPath) }},
		}
		if dnsDKIMHost != "" {
			checks = append(checks, dnsCheck{"DKIM", func() error { return v.DKIM(ctx, dnsDKIMHost, dnsDKIMValue) }})
		}

		var failed bool
		for _, c := range checks {
			err := c.run()
			switch {
			case err == nil:
				fmt.Fprintf(out, "%-12s ok\n", c.name)
			case errors.Is(err, dnsverify.ErrLookupFailed):
				return err
			default:
				failed = true
				fmt.Fprintf(out, "%-12s %v\n", c.name, err)
			}
		}
		if failed {
			return errRejected
		}
		return nil
	},
}

func init() {
	dnsCmd.Flags().StringVar(&dnsReturnPath, "return-path", "", "Return-Path host (default pm-bounces.<domain>)")
	dnsCmd.Flags().StringVar(&dnsDKIMHost, "dkim-host", "", "DKIM TXT host issued by Postmark")
	dnsCmd.Flags().StringVar(&dnsDKIMValue, "dkim-value", "", "DKIM public key value issued by Postmark")
}
