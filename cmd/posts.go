package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FuturePresentLabs/swarf/post"
)

var PostsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List available post-processor profiles.",
	Args:  cobra.NoArgs,
	Run: GetRunFn(func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		for _, name := range post.Names() {
			profile, err := post.Builtin(name)
			if err != nil {
				return err
			}
			cycles := "expand cycles"
			if profile.CannedCycles == post.RetainCycles {
				cycles = "canned cycles"
			}
			numbering := "no line numbers"
			if profile.LineNumbering {
				numbering = "line numbers"
			}
			fmt.Fprintf(w, "%-10s %s, %s\n", profile.Name, cycles, numbering)
		}
		return nil
	}),
}

func init() {
	RootCmd.AddCommand(PostsCmd)
}
