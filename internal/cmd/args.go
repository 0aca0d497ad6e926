package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// parseID reads a positive numeric id argument
func parseID(raw, what string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q: must be a positive number", what, raw)
	}
	return id, nil
}

// optionalInt returns a pointer to the flag value when the flag was set
func optionalInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

// optionalString returns a pointer to the flag value when the flag was set
func optionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// optionalBool returns a pointer to the flag value when the flag was set
func optionalBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

func idParams(id string) map[string]string {
	return map[string]string{"id": id}
}
