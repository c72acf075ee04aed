package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fornellas/slogxt/log"
	"github.com/spf13/cobra"
	"go.bug.st/serial"

	"github.com/FuturePresentLabs/swarf/gcode"
)

var baudRate int
var defaultBaudRate = 115200

var SendCmd = &cobra.Command{
	Use:   "send path",
	Short: "Stream a G-code file to a Grbl controller, line by line.",
	Args:  cobra.ExactArgs(1),
	Run: GetRunFn(func(cmd *cobra.Command, args []string) (err error) {
		path := args[0]

		ctx, logger := log.MustWithAttrs(
			cmd.Context(),
			"path", path,
			"port-name", portName,
			"address", address,
		)
		cmd.SetContext(ctx)

		openPortFn, err := GetOpenPortFn(ctx)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() { err = errors.Join(err, f.Close()) }()

		mode := &serial.Mode{
			BaudRate: baudRate,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		}
		port, err := openPortFn(mode)
		if err != nil {
			return err
		}
		defer func() { err = errors.Join(err, port.Close()) }()

		responses := bufio.NewScanner(port)
		parser := gcode.NewParser(f)
		sent := 0
		for {
			eof, block, _, err := parser.Next()
			if err != nil {
				return err
			}
			if block != nil && !block.Empty() {
				line := block.String()
				if _, err := port.Write([]byte(line + "\n")); err != nil {
					return err
				}
				if err := waitAck(responses, line); err != nil {
					return err
				}
				sent++
				logger.Debug("Sent", "line", line)
			}
			if eof {
				break
			}
		}

		logger.Info("Done", "lines", sent)
		return nil
	}),
}

// waitAck reads controller responses until the line is acknowledged.
// Grbl pushes status messages asynchronously; anything that is not an
// ok or an error is logged and skipped.
func waitAck(responses *bufio.Scanner, line string) error {
	for responses.Scan() {
		response := strings.TrimSpace(responses.Text())
		switch {
		case response == "ok":
			return nil
		case strings.HasPrefix(response, "error:"):
			return fmt.Errorf("controller rejected %q: %s", line, response)
		}
	}
	if err := responses.Err(); err != nil {
		return err
	}
	return fmt.Errorf("connection closed waiting for acknowledgement of %q", line)
}

func init() {
	RootCmd.AddCommand(SendCmd)
	AddPortFlags(SendCmd)
	SendCmd.PersistentFlags().IntVarP(
		&baudRate, "baud-rate", "b", defaultBaudRate,
		"Serial port baud rate",
	)
	resetFlagsFns = append(resetFlagsFns, func() {
		baudRate = defaultBaudRate
	})
}
