package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"resume-screener/internal/bootstrap"
)

func newRolesCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List the configured job roles and their skills",
		RunE: func(cmd *cobra.Command, _ []string) error {
			analyzer, models, err := bootstrap.BuildAnalyzer(loadConfig(v))
			if err != nil {
				return err
			}
			defer models.Shutdown()

			roles := analyzer.Taxonomy().Roles()
			if v.GetBool("json") {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(roles)
			}
			for _, r := range roles {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n  core: %s\n  secondary: %s\n",
					r.Name, strings.Join(r.Core, ", "), strings.Join(r.Secondary, ", "))
			}
			return nil
		},
	}
}
