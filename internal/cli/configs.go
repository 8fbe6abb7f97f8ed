// configs.go implements the "mirrorplan configs" commands for saved
// configuration documents.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mirrorplan/mirrorplan/internal/log"
)

var configsCmd = &cobra.Command{
	Use:   "configs",
	Short: "Manage saved migration configurations",
}

var configsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved configurations",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(e *env, cmd *cobra.Command, args []string) error {
		return e.listConfigs(cmd.OutOrStdout())
	}),
}

var configsShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a saved configuration",
	Args:  cobra.ExactArgs(1),
	RunE: withEnv(func(e *env, cmd *cobra.Command, args []string) error {
		return e.showConfig(cmd.OutOrStdout(), args[0])
	}),
}

var configsDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a saved configuration",
	Args:  cobra.ExactArgs(1),
	RunE: withEnv(func(e *env, cmd *cobra.Command, args []string) error {
		if err := e.deleteConfig(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	}),
}

func init() {
	configsCmd.AddCommand(configsListCmd)
	configsCmd.AddCommand(configsShowCmd)
	configsCmd.AddCommand(configsDeleteCmd)
}

// withEnv opens the project environment around fn.
func withEnv(fn func(e *env, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}
		e, err := openEnv(root, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()
		return fn(e, cmd, args)
	}
}

func (e *env) listConfigs(out io.Writer) error {
	names, err := e.docs.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(out, "No saved configurations. Create one with: mirrorplan recommend --save NAME")
		return nil
	}
	for _, name := range names {
		doc, err := e.docs.Load(name)
		if err != nil {
			fmt.Fprintf(out, "  %-24s (unreadable: %v)\n", name, err)
			continue
		}
		fmt.Fprintf(out, "  %-24s %-18s %s\n", name, doc.DataStrategy, doc.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func (e *env) showConfig(out io.Writer, name string) error {
	doc, err := e.docs.Load(name)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return enc.Close()
}

func (e *env) deleteConfig(name string) error {
	if err := e.docs.Delete(name); err != nil {
		return err
	}
	e.logEvent(log.LogEvent{Event: log.EventConfigDeleted, Document: name})
	return nil
}
