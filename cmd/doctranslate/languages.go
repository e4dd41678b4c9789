package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/doc-translate/internal/translate"
)

func languagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the supported target languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tNATIVE")
			for _, l := range translate.Languages() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", l.Code, l.Name, l.Native)
			}
			return w.Flush()
		},
	}
}
