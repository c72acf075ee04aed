package main

import (
	"os"

	"github.com/fornellas/slogxt/log"
	"github.com/spf13/cobra"

	"github.com/FuturePresentLabs/swarf/blackbook"
	"github.com/FuturePresentLabs/swarf/compile"
	"github.com/FuturePresentLabs/swarf/dsl"
	"github.com/FuturePresentLabs/swarf/validate"
)

var CheckCmd = &cobra.Command{
	Use:   "check path",
	Short: "Compile and validate a program without emitting G-code.",
	Args:  cobra.ExactArgs(1),
	Run: GetRunFn(func(cmd *cobra.Command, args []string) (err error) {
		path := args[0]

		ctx, logger := log.MustWithAttrs(
			cmd.Context(),
			"path", path,
		)
		cmd.SetContext(ctx)

		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		parsed, err := dsl.Parse(string(source))
		if err != nil {
			return err
		}

		library, err := GetToolLibrary()
		if err != nil {
			return err
		}

		book := blackbook.New()
		program, err := compile.NewCompiler(book, library).Compile(parsed)
		if err != nil {
			return err
		}

		diags := validate.Check(book, program, validate.Limits{
			MaxRPM:  maxRPM,
			MaxFeed: maxFeed,
		})
		for _, d := range diags {
			if d.Severity == validate.SeverityError {
				logger.Error(d.Msg, "op", d.Activation+1, "tool", d.Tool)
			} else {
				logger.Warn(d.Msg, "op", d.Activation+1, "tool", d.Tool)
			}
		}
		if validate.HasErrors(diags) {
			Exit(1)
		}

		logger.Info("OK", "operations", len(program.Activations), "warnings", len(diags))
		return nil
	}),
}

func init() {
	RootCmd.AddCommand(CheckCmd)
	AddToolsFlags(CheckCmd)
	CheckCmd.PersistentFlags().Float64VarP(
		&maxRPM, "max-rpm", "", defaultMaxRPM,
		"Machine spindle limit; 0 uses the built-in per-diameter table",
	)
	CheckCmd.PersistentFlags().Float64VarP(
		&maxFeed, "max-feed", "", defaultMaxFeed,
		"Machine feed limit; 0 disables the check",
	)
}
