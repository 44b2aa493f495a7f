// Command transform runs the JavaScript transform from the command line.
package main

import (
	"os"

	"github.com/zengjixiang/parcel/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
