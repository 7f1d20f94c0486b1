package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/knowscan-ai/knowscan/cmd/service"
)

func main() {
	root := &cobra.Command{
		Use:   "knowscan",
		Short: "knowscan",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("empty command")
		},
	}

	root.AddCommand(service.NewCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
