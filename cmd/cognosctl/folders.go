package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usestring/cognos-mcp/internal/walk"
	"github.com/usestring/cognos-mcp/pkg/client"
)

var (
	// ls flags
	lsPattern    string
	lsTypes      []string
	lsIgnoreCase bool

	// tree flags
	treeDepth   int
	treePattern string
	treeTypes   []string

	// rm flags
	rmForce     bool
	rmRecursive bool
)

func init() {
	rootCmd.AddCommand(rootsCmd, lsCmd, treeCmd, mkdirCmd, rmCmd)

	lsCmd.Flags().StringVarP(&lsPattern, "pattern", "p", "*", "Shell glob matched against entry names")
	lsCmd.Flags().StringSliceVarP(&lsTypes, "type", "t", []string{"folder"}, "Object types to list (repeatable or comma separated)")
	lsCmd.Flags().BoolVarP(&lsIgnoreCase, "ignore-case", "i", false, "Match the pattern case-insensitively")

	treeCmd.Flags().IntVarP(&treeDepth, "depth", "d", 0, "Levels to list below the folder (default: TREE_MAX_DEPTH)")
	treeCmd.Flags().StringVarP(&treePattern, "pattern", "p", "", "Shell glob matched against every entry name")
	treeCmd.Flags().StringSliceVarP(&treeTypes, "type", "t", nil, "Non-folder object types to include")

	rmCmd.Flags().BoolVar(&rmForce, "force", true, "Delete even when the object is referenced")
	rmCmd.Flags().BoolVar(&rmRecursive, "recursive", true, "Delete the folder content too")
}

var rootsCmd = &cobra.Command{
	Use:   "roots",
	Short: "List the My Content and Team Content root folders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(c *client.Client) error {
			roots, err := c.ListRootFolder(cmd.Context())
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), roots)
		})
	},
}

var lsCmd = &cobra.Command{
	Use:   "ls <folder-id>",
	Short: "List one level of a folder",
	Long: `List the entries of a folder whose name matches a shell glob and whose type
is one of the requested types.

Examples:
  # Folders whose name starts with Sales
  cognosctl ls i5C0B9D --pattern 'Sales*'

  # Reports and dashboards, any case
  cognosctl ls i5C0B9D -t report,exploration -p '*revenue*' -i`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := &client.ListOptions{
			Pattern:         lsPattern,
			Types:           parseTypes(lsTypes),
			CaseInsensitive: lsIgnoreCase,
		}
		return withSession(cmd.Context(), func(c *client.Client) error {
			items, err := c.ListFolder(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), items)
		})
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree <folder-id>",
	Short: "Walk several levels below a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		depth := treeDepth
		if depth <= 0 {
			depth = cfg.TreeMaxDepth
		}
		opts := walk.Options{
			Depth:   depth,
			Pattern: treePattern,
			Types:   parseTypes(treeTypes),
			Workers: cfg.TreeFetchWorkers,
		}
		return withSession(cmd.Context(), func(c *client.Client) error {
			tree, err := walk.Walk(cmd.Context(), c, args[0], opts)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), tree)
		})
	},
}

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <parent-id> <name>",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(c *client.Client) error {
			created := c.AddFolder(cmd.Context(), args[0], args[1])
			if created == nil {
				return fmt.Errorf("folder %q was not created under %s", args[1], args[0])
			}
			return writeOutput(cmd.OutOrStdout(), created)
		})
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a folder or other object",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := &client.DeleteOptions{Force: rmForce, Recursive: rmRecursive}
		return withSession(cmd.Context(), func(c *client.Client) error {
			if !c.DeleteFolder(cmd.Context(), args[0], opts) {
				return errors.New("deletion failed, see the log for details")
			}
			return writeOutput(cmd.OutOrStdout(), map[string]any{"id": args[0], "deleted": true})
		})
	},
}

func parseTypes(values []string) []client.ObjectType {
	var out []client.ObjectType
	for _, v := range values {
		out = append(out, client.ParseObjectTypes(v)...)
	}
	return out
}
