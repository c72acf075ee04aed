package main

import (
	"github.com/spf13/cobra"

	"github.com/FuturePresentLabs/swarf/tools"
)

var toolsPath string
var defaultToolsPath = ""

func AddToolsFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(
		&toolsPath, "tools", "t", defaultToolsPath,
		"Path to a tool library file (JSON or YAML)",
	)
}

// GetToolLibrary loads the library from --tools, or an empty library
// when the flag is unset. Programs then have to declare tools inline.
func GetToolLibrary() (*tools.Library, error) {
	if toolsPath == "" {
		return tools.Empty(), nil
	}
	return tools.Load(toolsPath)
}

func init() {
	resetFlagsFns = append(resetFlagsFns, func() {
		toolsPath = defaultToolsPath
	})
}
