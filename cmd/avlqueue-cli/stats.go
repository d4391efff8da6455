package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the queue's current head/tail keys and height",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fq, err := openQueue()
		if err != nil {
			return err
		}
		defer fq.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ascending: %v\n", fq.IsAscending())
		fmt.Fprintf(out, "empty:     %v\n", fq.IsEmpty())
		fmt.Fprintf(out, "height:    %d\n", fq.GetHeight())
		if head, ok := fq.GetHeadKey(); ok {
			fmt.Fprintf(out, "head key:  %d\n", head)
		}
		if tail, ok := fq.GetTailKey(); ok {
			fmt.Fprintf(out, "tail key:  %d\n", tail)
		}
		return nil
	},
}
