package cmd

import (
	"github.com/AnyUserName/imgpress/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	convertInput   string
	convertOutput  string
	convertQuality int
	convertSpeed   int
	convertProfile string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an image; the output extension selects the format",
	Long: `Decodes --input and writes it to --output in the format named by the
output extension. Quality applies to JPEG, speed to GIF; out-of-range values
are clamped. The output file is replaced only after encoding succeeded.`,
	Example: `  imgpress convert -i cat.png -o cat.jpg -q 90
  imgpress convert -i logo.bmp -o logo.gif --speed 10`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertInput, "input", "i", "", "image to convert (required)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output file, extension included (required)")
	addEncodingFlags(convertCmd, &convertQuality, &convertSpeed, &convertProfile)
	convertCmd.MarkFlagRequired("input")
	convertCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, _ []string) error {
	prof, err := resolveProfile(cmd, convertProfile, convertQuality, convertSpeed)
	if err != nil {
		return err
	}

	p := pipeline.New(pipeline.Config{
		Input:   convertInput,
		Output:  convertOutput,
		Params:  prof.Params,
		Verbose: verbose,
	})
	res, err := p.Run()
	if err != nil {
		return err
	}

	logResult(res)
	return nil
}
