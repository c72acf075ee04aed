package main

import (
	"fmt"

	"github.com/spf13/cobra"

	swarffmt "github.com/FuturePresentLabs/swarf/internal/fmt"
)

var ToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tool library.",
	Args:  cobra.NoArgs,
	Run: GetRunFn(func(cmd *cobra.Command, args []string) error {
		if toolsPath == "" {
			return fmt.Errorf("--tools is required")
		}
		library, err := GetToolLibrary()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for _, tool := range library.List() {
			fmt.Fprintf(w, "%3d  %-24s dia %-7s %dFL %s\n",
				tool.ID, tool.Name, swarffmt.SprintFloat(tool.Diameter, 4),
				tool.Flutes, tool.Material)
		}
		return nil
	}),
}

func init() {
	RootCmd.AddCommand(ToolsCmd)
	AddToolsFlags(ToolsCmd)
}
