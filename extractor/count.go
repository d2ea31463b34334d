package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	multievent "github.com/next-exp/multievent_go/pkg"
)

var countCmd = &cobra.Command{
	Use:   "count <multiplicity>...",
	Short: "Print the number of pairs a group of each multiplicity yields",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return countPairs(cmd.OutOrStdout(), args)
	},
}

func countPairs(out io.Writer, args []string) error {
	for _, arg := range args {
		n, err := pairsForArgument(arg)
		if err != nil {
			return fmt.Errorf("%q: %w", arg, err)
		}
		fmt.Fprintf(out, "%s\t%d\n", arg, n)
	}
	return nil
}

// Integers are passed on as numbers, everything else as text, so that
// "multiples" is reported as the wrong type rather than a bad number.
func pairsForArgument(arg string) (int, error) {
	var value any = arg
	if n, err := strconv.Atoi(arg); err == nil {
		value = n
	}
	return multievent.PairsPerMultiplicityOf(value)
}
