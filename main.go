// File: travelgo/main.go
package main

import (
	"fmt"
	"os"

	"travelgo/cmd"
	"travelgo/config"
	"travelgo/utils"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	defer utils.GetLogger().Sync()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
