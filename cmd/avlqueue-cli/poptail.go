package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var popTailCmd = &cobra.Command{
	Use:   "pop-tail",
	Short: "Remove and print the queue's current tail value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fq, err := openQueue()
		if err != nil {
			return err
		}
		defer fq.Close()

		value, err := fq.PopTail()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "popped tail: %s\n", value)
		return nil
	},
}
