package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/AnyUserName/imgpress/internal/encoder"
	"github.com/AnyUserName/imgpress/internal/profile"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "imgpress",
	Short: "Re-encode or convert an image between PNG, JPEG, GIF and BMP",
	Long: `imgpress re-encodes a single image file, optionally converting it to
another format and applying lossy quality or encoder speed settings.

Supported formats (chosen by file extension): .png .jpg .jpeg .gif .bmp`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true, // main prints the error
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"imgpress %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[imgpress] "+format+"\n", args...)
	}
}

// addEncodingFlags registers --quality, --speed and --profile on c.
func addEncodingFlags(c *cobra.Command, quality, speed *int, profileName *string) {
	def := profile.Default()
	c.Flags().IntVarP(quality, "quality", "q", def.Params.Quality,
		fmt.Sprintf("lossy quality %d-%d, clamped (default from profile)", encoder.MinQuality, encoder.MaxQuality))
	c.Flags().IntVarP(speed, "speed", "s", def.Params.Speed,
		fmt.Sprintf("GIF encoder speed %d-%d, clamped (default from profile)", encoder.MinSpeed, encoder.MaxSpeed))
	c.Flags().StringVarP(profileName, "profile", "p", def.Name,
		"encoding profile: "+strings.Join(profile.Names(), ", "))
}

// resolveProfile loads the named profile and applies --quality/--speed
// when they were given explicitly.
func resolveProfile(c *cobra.Command, name string, quality, speed int) (profile.Profile, error) {
	prof, ok := profile.Get(name)
	if !ok {
		return profile.Profile{}, fmt.Errorf("unknown profile %q (available: %s)",
			name, strings.Join(profile.Names(), ", "))
	}
	var q, s *int
	if c.Flags().Changed("quality") {
		q = &quality
	}
	if c.Flags().Changed("speed") {
		s = &speed
	}
	prof = prof.Override(q, s)
	logVerbose("profile: %s (quality=%d, speed=%d)", prof.Name, prof.Params.Quality, prof.Params.Speed)
	return prof, nil
}
