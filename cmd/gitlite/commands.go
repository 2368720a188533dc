package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DevonMartin/gitlite/internal/repo"
	"github.com/DevonMartin/gitlite/internal/vcserr"
)

const workingDir = "."

// printErr prints a reported condition's exact message to stdout — every
// defined outcome in spec.md §7 is a single line on standard output, and
// the process always exits 0 regardless (enforced in main.go).
func printErr(err error) {
	fmt.Println(err.Error())
}

// openRepo opens the repository rooted at the working directory, or
// reports "Not in an initialized Gitlet directory." and returns false.
func openRepo() (*repo.Repository, bool) {
	r, err := repo.Open(workingDir)
	if err != nil {
		printErr(err)
		return nil, false
	}
	return r, true
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "gitlite",
		Short:             "a local, single-user version-control engine",
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		Args:              cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printErr(vcserr.ErrIncorrectOperands)
			return nil
		},
	}
	root.AddCommand(
		initCmd(), addCmd(), rmCmd(), commitCmd(), logCmd(), globalLogCmd(),
		findCmd(), statusCmd(), branchCmd(), rmBranchCmd(), checkoutCmd(),
		resetCmd(), mergeCmd(),
	)
	return root
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "init",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				printErr(vcserr.ErrIncorrectOperands)
				return nil
			}
			if _, err := repo.Init(workingDir); err != nil {
				printErr(err)
			}
			return nil
		},
	}
}

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "add",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				printErr(vcserr.ErrIncorrectOperands)
				return nil
			}
			r, ok := openRepo()
			if !ok {
				return nil
			}
			if err := r.Add(args[0]); err != nil {
				printErr(err)
			}
			return nil
		},
	}
}

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "rm",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				printErr(vcserr.ErrIncorrectOperands)
				return nil
			}
			r, ok := openRepo()
			if !ok {
				return nil
			}
			if err := r.Remove(args[0]); err != nil {
				printErr(err)
			}
			return nil
		},
	}
}

func commitCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "commit",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				printErr(vcserr.ErrIncorrectOperands)
				return nil
			}
			r, ok := openRepo()
			if !ok {
				return nil
			}
			if err := r.Commit(args[0]); err != nil {
				printErr(err)
			}
			return nil
		},
	}
}

func logCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "log",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				printErr(vcserr.ErrIncorrectOperands)
				return nil
			}
			r, ok := openRepo()
			if !ok {
				return nil
			}
			out, err := r.Log()
			if err != nil {
				printErr(err)
				return nil
			}
			fmt.Print(out)
			return nil
		},
	}
}

func globalLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "global-log",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				printErr(vcserr.ErrIncorrectOperands)
				return nil
			}
			r, ok := openRepo()
			if !ok {
				return nil
			}
			out, err := r.GlobalLog()
			if err != nil {
				printErr(err)
				return nil
			}
			fmt.Print(out)
			return nil
		},
	}
}

func findCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "find",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				printErr(vcserr.ErrIncorrectOperands)
				return nil
			}
			r, ok := openRepo()
			if !ok {
				return nil
			}
			matches, err := r.Find(args[0])
			if err != nil {
				printErr(err)
				return nil
			}
			for _, fp := range matches {
				fmt.Println(fp)
			}
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "status",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				printErr(vcserr.ErrIncorrectOperands)
				return nil
			}
			r, ok := openRepo()
			if !ok {
				return nil
			}
			out, err := r.Status()
			if err != nil {
				printErr(err)
				return nil
			}
			fmt.Print(out)
			return nil
		},
	}
}

func branchCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "branch",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				printErr(vcserr.ErrIncorrectOperands)
				return nil
			}
			r, ok := openRepo()
			if !ok {
				return nil
			}
			if err := r.Branch(args[0]); err != nil {
				printErr(err)
			}
			return nil
		},
	}
}

func rmBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "rm-branch",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				printErr(vcserr.ErrIncorrectOperands)
				return nil
			}
			r, ok := openRepo()
			if !ok {
				return nil
			}
			if err := r.RemoveBranch(args[0]); err != nil {
				printErr(err)
			}
			return nil
		},
	}
}

// checkoutCmd accepts the three operand shapes of spec.md §6:
// "-- <file>", "<commit> -- <file>", and "<branch>". Flag parsing is
// disabled so the literal "--" operand reaches args.
func checkoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "checkout",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, ok := openRepo()
			if !ok {
				return nil
			}
			var err error
			switch {
			case len(args) == 2 && args[0] == "--":
				err = r.CheckoutFile(args[1])
			case len(args) == 3 && args[1] == "--":
				err = r.CheckoutCommitFile(args[0], args[2])
			case len(args) == 1:
				err = r.CheckoutBranch(args[0])
			default:
				printErr(vcserr.ErrIncorrectOperands)
				return nil
			}
			if err != nil {
				printErr(err)
			}
			return nil
		},
	}
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "reset",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				printErr(vcserr.ErrIncorrectOperands)
				return nil
			}
			r, ok := openRepo()
			if !ok {
				return nil
			}
			if err := r.Reset(args[0]); err != nil {
				printErr(err)
			}
			return nil
		},
	}
}

func mergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "merge",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				printErr(vcserr.ErrIncorrectOperands)
				return nil
			}
			r, ok := openRepo()
			if !ok {
				return nil
			}
			if err := r.Merge(args[0]); err != nil {
				printErr(err)
			}
			return nil
		},
	}
}
