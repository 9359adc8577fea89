package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/config"
)

var schemaCmd = &cobra.Command{
	Use:    "schema",
	Short:  "Generate config JSON schema",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		schema := config.Schema()
		schemaJSON, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal schema: %w", err)
		}
		fmt.Println(string(schemaJSON))
		return nil
	},
}
