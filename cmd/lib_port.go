package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.bug.st/serial"

	"github.com/FuturePresentLabs/swarf/serialtcp"
)

var portName string
var defaultPortName = ""

var address string
var defaultAddress = ""

var dialTimeout time.Duration
var defaultDialTimeout = 5 * time.Second

func AddPortFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&portName, "port-name", "p", defaultPortName, "Serial port name to open")
	cmd.PersistentFlags().StringVarP(&address, "address", "a", defaultAddress, "TCP address to connect to")
	cmd.PersistentFlags().DurationVarP(&dialTimeout, "timeout", "", defaultDialTimeout, "TCP dial timeout")
}

func GetOpenPortFn(ctx context.Context) (func(*serial.Mode) (serial.Port, error), error) {
	if portName != "" && address != "" {
		return nil, fmt.Errorf("flags --port-name and --address cannot be set simultaneously")
	}

	if portName != "" {
		return func(mode *serial.Mode) (serial.Port, error) {
			return serial.Open(portName, mode)
		}, nil
	}

	if address != "" {
		return func(mode *serial.Mode) (serial.Port, error) {
			return serialtcp.TcpPortDial(ctx, address, dialTimeout)
		}, nil
	}

	return nil, fmt.Errorf("either --port-name or --address must be set")
}

func init() {
	resetFlagsFns = append(resetFlagsFns, func() {
		portName = defaultPortName
		address = defaultAddress
		dialTimeout = defaultDialTimeout
	})
}
