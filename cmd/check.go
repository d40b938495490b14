package cmd

import (
	"fmt"
	"io"

	"github.com/AnyUserName/imgpress/internal/format"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Report whether files have a supported image extension",
	Long: `Checks each filename's extension against the supported set
(.png .jpg .jpeg .gif .bmp, any case). File contents are not read.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	invalid := checkExtensions(cmd.OutOrStdout(), args)
	if invalid == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d files have an unsupported extension", invalid, len(args))
}

// checkExtensions prints one verdict line per name and returns the number
// of invalid names.
func checkExtensions(w io.Writer, names []string) int {
	invalid := 0
	for _, name := range names {
		f, err := format.Parse(name)
		if err != nil {
			invalid++
			fmt.Fprintf(w, "  ✗ %s: %v\n", name, err)
			continue
		}
		fmt.Fprintf(w, "  ✓ %s (%s)\n", name, f)
	}
	return invalid
}
