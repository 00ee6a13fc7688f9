package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge duplicate people whose profile URLs normalize to the same URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("store"); err != nil {
			return err
		}

		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		merged, err := st.MergeDuplicatePeople(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Merged %d duplicate groups.\n", merged)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
