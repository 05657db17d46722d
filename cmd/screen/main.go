// Command screen runs resume screenings from the terminal.
//
//	screen analyze --file resume.pdf --jd-file jd.txt --role "data scientist"
//	screen roles
package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"resume-screener/internal/shared/telemetry"
)

func main() {
	err := newRootCmd(viper.New()).Execute()
	telemetry.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
