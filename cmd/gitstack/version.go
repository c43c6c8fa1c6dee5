package main

import (
	"fmt"

	"github.com/gitstack-dev/gitstack/internal/config"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the gitstack and detected git version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(config.Version)
		repo, err := getRepo(cmd.Context())
		if err != nil {
			// Not being inside a repo is fine for `version`; just skip the
			// git version line.
			return nil
		}
		v, err := repo.Version(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("git %s\n", v)
		return nil
	},
}
