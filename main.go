package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	cli := parseArgs(os.Args[1:])

	switch cli.mode {
	case runMode:
		emuMain(cli.Run)
	case regsMode:
		printRegs(os.Stdout)
	case versionMode:
		fmt.Println("neon250", version)
	}
}
