// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"storj.io/dtradeploy/network"
)

type profileJSON struct {
	Name       string `json:"name"`
	Endpoint   string `json:"endpoint"`
	ChainID    uint64 `json:"chainId"`
	Credential string `json:"credential"`
	Source     string `json:"source,omitempty"`
	Account    string `json:"account,omitempty"`
}

func (cmd *command) newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Print the resolved network profile",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			lookup, err := cmd.lookup()
			if err != nil {
				return err
			}
			profile, err := network.Resolve(lookup)
			if err != nil {
				return err
			}

			if !cmd.jsonOut {
				_, err = fmt.Fprintln(cmd.stdout, profile.String())
				return err
			}

			out := profileJSON{
				Name:       profile.Name,
				Endpoint:   profile.Endpoint,
				ChainID:    profile.ChainID,
				Credential: string(profile.Credential),
				Source:     string(profile.Source),
			}
			if addr, err := profile.Address(); err == nil {
				out.Account = addr.Hex()
			}
			return cmd.printJSON(out)
		},
	}
}
