package main

import (
	"errors"
	"os"

	"github.com/fornellas/slogxt/log"
	"github.com/spf13/cobra"

	"github.com/FuturePresentLabs/swarf/blackbook"
	"github.com/FuturePresentLabs/swarf/compile"
	"github.com/FuturePresentLabs/swarf/dsl"
	"github.com/FuturePresentLabs/swarf/post"
	"github.com/FuturePresentLabs/swarf/validate"
)

var postName string
var defaultPostName = "generic"

var maxRPM float64
var defaultMaxRPM = 0.0

var maxFeed float64
var defaultMaxFeed = 0.0

var noSummary bool
var defaultNoSummary = false

var CompileCmd = &cobra.Command{
	Use:   "compile path",
	Short: "Compile a program to G-code.",
	Args:  cobra.ExactArgs(1),
	Run: GetRunFn(func(cmd *cobra.Command, args []string) (err error) {
		path := args[0]

		ctx, logger := log.MustWithAttrs(
			cmd.Context(),
			"path", path,
			"post", postName,
			"output", outputValue,
		)
		cmd.SetContext(ctx)

		profile, err := post.Builtin(postName)
		if err != nil {
			return err
		}

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
		errCount := 0
		for _, d := range diags {
			if d.Severity == validate.SeverityError {
				logger.Error(d.Msg, "op", d.Activation+1, "tool", d.Tool)
				errCount++
			} else {
				logger.Warn(d.Msg, "op", d.Activation+1, "tool", d.Tool)
			}
		}
		if errCount > 0 {
			logger.Error("Refusing to emit G-code", "errors", errCount)
			Exit(1)
		}

		w, err := outputValue.WriterCloser()
		if err != nil {
			return err
		}
		defer func() { err = errors.Join(err, w.Close()) }()

		generator := post.NewGenerator(profile)
		generator.Summary = !noSummary
		text := generator.Generate(program, diags)
		if _, err := w.Write([]byte(text)); err != nil {
			return err
		}

		logger.Info("Compiled",
			"operations", len(program.Activations),
			"warnings", len(diags),
		)
		return nil
	}),
}

func init() {
	RootCmd.AddCommand(CompileCmd)
	AddOutputFlags(CompileCmd)
	AddToolsFlags(CompileCmd)
	CompileCmd.PersistentFlags().StringVarP(
		&postName, "post", "", defaultPostName,
		"Post-processor profile to emit G-code for",
	)
	CompileCmd.PersistentFlags().Float64VarP(
		&maxRPM, "max-rpm", "", defaultMaxRPM,
		"Machine spindle limit; 0 uses the built-in per-diameter table",
	)
	CompileCmd.PersistentFlags().Float64VarP(
		&maxFeed, "max-feed", "", defaultMaxFeed,
		"Machine feed limit; 0 disables the check",
	)
	CompileCmd.PersistentFlags().BoolVarP(
		&noSummary, "no-summary", "", defaultNoSummary,
		"Omit cutting parameter comment blocks from the output",
	)
	resetFlagsFns = append(resetFlagsFns, func() {
		postName = defaultPostName
		maxRPM = defaultMaxRPM
		maxFeed = defaultMaxFeed
		noSummary = defaultNoSummary
	})
}
