package cmd

import (
	"github.com/AnyUserName/imgpress/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	recompressFile      string
	recompressQuality   int
	recompressSpeed     int
	recompressProfile   string
	recompressNoRegress bool
)

var recompressCmd = &cobra.Command{
	Use:   "recompress",
	Short: "Re-encode an image in place, keeping its format",
	Long: `Decodes --file and re-encodes it over itself in the same format.
The file is replaced atomically; a byte-identical result is not rewritten.`,
	Example: `  imgpress recompress -f photo.jpg -q 70
  imgpress recompress -f banner.png --no-regress-size`,
	Args: cobra.NoArgs,
	RunE: runRecompress,
}

func init() {
	recompressCmd.Flags().StringVarP(&recompressFile, "file", "f", "", "image to recompress (required)")
	addEncodingFlags(recompressCmd, &recompressQuality, &recompressSpeed, &recompressProfile)
	recompressCmd.Flags().BoolVar(&recompressNoRegress, "no-regress-size", false, "keep the original if the result is not smaller")
	recompressCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(recompressCmd)
}

func runRecompress(cmd *cobra.Command, _ []string) error {
	prof, err := resolveProfile(cmd, recompressProfile, recompressQuality, recompressSpeed)
	if err != nil {
		return err
	}

	p := pipeline.New(pipeline.Config{
		Input:         recompressFile,
		Params:        prof.Params,
		NoRegressSize: recompressNoRegress,
		Verbose:       verbose,
	})
	res, err := p.Run()
	if err != nil {
		return err
	}

	logResult(res)
	return nil
}
