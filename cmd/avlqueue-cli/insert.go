package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var insertCmd = &cobra.Command{
	Use:   "insert <key> <value>",
	Short: "Insert value under the given insertion key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid key %q: %w", args[0], err)
		}

		fq, err := openQueue()
		if err != nil {
			return err
		}
		defer fq.Close()

		accessKey, err := fq.Insert(key, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "inserted: access_key=%d\n", accessKey)
		return nil
	},
}
