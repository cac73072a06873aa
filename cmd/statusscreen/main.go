// Command statusscreen shows the scanner status overview on an OLED display
// or, for development, in the terminal.
//
// Hardware Setup:
//
// Connect a 128x64 SSD1306 display via I²C:
//
//	Display    Raspberry Pi
//	GND        GND
//	VCC        3.3V
//	SCL        GPIO3 (I2C1 SCL)
//	SDA        GPIO2 (I2C1 SDA)
//
// or via 4-wire SPI with a Data/Command pin (--backend spi --dc GPIO25).
// SH1106 modules are not supported: they lack the horizontal addressing mode
// the SSD1306 driver relies on and have 132 columns of RAM.
//
// With --backend terminal the preview takes over the tty, so input has to
// be piped in:
//
//	scanner | statusscreen run --backend terminal
//
// The command reads stdin one line at a time:
//
//	any text             push a log line
//	~text                replace the newest log line
//	!fix on|off          update the GPS fix indicator
//	!stats N OPEN WEP    update the scan counters
//	!refresh             redraw the whole screen
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.0.0"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statusscreen",
		Short: "Show the war-walking status overview on a small display.",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of statusscreen",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "statusscreen version: %s\n", Version)
		},
	}

	cmd.AddCommand(versionCmd, newRunCmd())
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
