package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-renderer/internal/fonts"
)

var fontsCmd = &cobra.Command{
	Use:   "fonts",
	Short: "Show which font family will be used for rendering",
	Long: `Show the font family resolved on this host.

Unicode TTF fonts are needed for currency symbols; when none of the known
font files exist the built-in core font is used and currency glyphs may
render incorrectly.`,
	RunE: runFonts,
}

func init() {
	rootCmd.AddCommand(fontsCmd)
}

func runFonts(cmd *cobra.Command, args []string) error {
	pair := fonts.Load()
	if pair.Builtin() {
		fmt.Printf("Family: %s (built-in core font, no currency-glyph support)\n", pair.Family)
		return nil
	}
	fmt.Printf("Family: %s (regular %d bytes, bold %d bytes)\n",
		pair.Family, len(pair.Regular), len(pair.Bold))
	return nil
}
