package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <access-key>",
	Short: "Remove the entry named by an access key returned from insert",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accessKey, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid access key %q: %w", args[0], err)
		}

		fq, err := openQueue()
		if err != nil {
			return err
		}
		defer fq.Close()

		value, err := fq.Remove(accessKey)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed: %s\n", value)
		return nil
	},
}
