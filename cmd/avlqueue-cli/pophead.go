package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var popHeadCmd = &cobra.Command{
	Use:   "pop-head",
	Short: "Remove and print the queue's current head value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fq, err := openQueue()
		if err != nil {
			return err
		}
		defer fq.Close()

		value, err := fq.PopHead()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "popped head: %s\n", value)
		return nil
	},
}
