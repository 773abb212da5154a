// Command book creates, restructures and renders a markdown book.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/madeso/book/internal/console"
	"github.com/madeso/book/internal/ops"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Operation failed: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "book",
		Short:         "Create or write a book",
		Long:          "book manages a hierarchical markdown book and renders it to linked HTML.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Every command operates on the current directory; the owning book is
	// discovered by walking upward from there.
	cwd := func() string {
		wd, err := os.Getwd()
		if err != nil {
			return "."
		}
		return wd
	}
	con := func() *console.Console {
		return console.Default(verbose)
	}

	var update bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops.Init(con(), cwd(), update)
		},
	}
	initCmd.Flags().BoolVar(&update, "update", false, "refresh frontmatter across an existing book")

	addCmd := &cobra.Command{
		Use:   "add <chapter>...",
		Short: "Add an existing page or chapter to a book",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops.Add(con(), cwd(), args)
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <chapter>...",
		Short: "Remove an existing page or chapter",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops.Remove(con(), cwd(), args)
		},
	}

	newCmd := &cobra.Command{
		Use:   "new <page>...",
		Short: "Add a new page to a book",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops.NewPages(con(), cwd(), args)
		},
	}

	var importPrint bool
	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a book from a flat markdown document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops.Import(con(), cwd(), args[0], importPrint)
		},
	}
	importCmd.Flags().BoolVar(&importPrint, "print", false, "list the pages without importing")

	reorderCmd := &cobra.Command{
		Use:       "reorder <last|before_toc|after_toc> <chapter>...",
		Short:     "Reorder pages or chapters in the current book",
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: []string{string(ops.ReorderLast), string(ops.ReorderBeforeTOC), string(ops.ReorderAfterTOC)},
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := ops.ParseReorderPolicy(args[0])
			if err != nil {
				return err
			}
			return ops.Reorder(con(), cwd(), policy, args[1:])
		},
	}

	var moveDestination string
	moveCmd := &cobra.Command{
		Use:   "move <chapter>...",
		Short: "Move pages between chapters",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := moveDestination
			if dest == "" {
				dest = cwd()
			}
			return ops.Move(con(), dest, args)
		},
	}
	moveCmd.Flags().StringVar(&moveDestination, "destination", "", "destination chapter folder (defaults to the current directory)")

	var splitPrint bool
	var splitOn string
	splitCmd := &cobra.Command{
		Use:   "split <file>...",
		Short: "Split an existing page into several pages or chapters",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops.Split(con(), cwd(), args, splitOn, splitPrint)
		},
	}
	splitCmd.Flags().BoolVar(&splitPrint, "print", false, "list the resulting pages without splitting")
	splitCmd.Flags().StringVar(&splitOn, "on", "", "only split at headers containing this text")

	indentCmd := &cobra.Command{
		Use:   "indent <file>...",
		Short: "Demote top-level headers one level",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops.Indent(con(), cwd(), args)
		},
	}

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Generate the HTML site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pageCount, err := ops.Build(con(), cwd())
			if err != nil {
				return err
			}
			fmt.Printf("✅ Success! Generated %d pages.\n", pageCount)
			return nil
		},
	}

	makeLocalCmd := &cobra.Command{
		Use:   "make_local",
		Short: "Download remote images and update the markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops.MakeLocal(con(), cwd())
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List things",
	}
	listCmd.AddCommand(
		&cobra.Command{
			Use:   "markdown",
			Short: "List all markdown files",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return ops.ListMarkdown(con(), cwd())
			},
		},
		&cobra.Command{
			Use:   "images",
			Short: "List all images",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return ops.ListImages(con(), cwd())
			},
		},
	)

	root.AddCommand(initCmd, addCmd, rmCmd, newCmd, importCmd, reorderCmd,
		moveCmd, splitCmd, indentCmd, buildCmd, makeLocalCmd, listCmd)
	return root
}
