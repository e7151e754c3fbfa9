package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"toolbelt/internal/phonetic"
)

func init() {
	rootCmd.AddCommand(spellCmd)
}

var spellCmd = &cobra.Command{
	Use:   "spell <text>...",
	Short: "Spell text with the NATO phonetic alphabet",
	Long:  "Prints one line per character. Characters without a phonetic word\n(punctuation, spaces) are marked explicitly rather than dropped.",
	Args:  cobra.MinimumNArgs(1),
	Run:   runSpell,
}

func runSpell(cmd *cobra.Command, args []string) {
	for _, e := range phonetic.Spell(strings.Join(args, " ")) {
		if e.Known {
			fmt.Printf("%c - %s\n", e.Char, e.Word)
		} else {
			fmt.Printf("%c - (no phonetic)\n", e.Char)
		}
	}
}
