package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		errorHandler.HandleError(err)
		os.Exit(1)
	}
}
