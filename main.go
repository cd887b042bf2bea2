package main

import (
	"fmt"
	"os"

	"github.com/mxu49/taintwalk/cmd"
	"github.com/mxu49/taintwalk/output"
)

var osExit = os.Exit

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(int(output.ExitCodeError))
	}
}
