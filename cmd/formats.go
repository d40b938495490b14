package cmd

import (
	"fmt"

	"github.com/AnyUserName/imgpress/internal/encoder"
	"github.com/AnyUserName/imgpress/internal/profile"
	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported formats and encoding profiles",
	Args:  cobra.NoArgs,
	Run:   runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, _ []string) {
	w := cmd.OutOrStdout()
	def := profile.Default()
	reg := encoder.NewRegistry(def.Params)
	logVerbose("%s", reg)

	params := reg.Params()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Formats (defaults: quality=%d, speed=%d):\n", params.Quality, params.Speed)
	for _, f := range reg.Available() {
		enc, err := reg.Get(f)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "    %s  (writes .%s)\n", reg.Describe(f), enc.Extension())
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  Profiles:")
	for _, name := range profile.Names() {
		p, _ := profile.Get(name)
		marker := " "
		if name == def.Name {
			marker = "*"
		}
		fmt.Fprintf(w, "  %s %-12s quality=%-3d speed=%-2d  %s\n",
			marker, p.Name, p.Params.Quality, p.Params.Speed, p.Description)
	}
	fmt.Fprintln(w)
}
