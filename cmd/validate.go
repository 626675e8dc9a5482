package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/naderabdullah/cardforge/catalog"
)

// validateCmd checks a design directory without starting the service.
var validateCmd = &cobra.Command{
	Use:   "validate [design-dir]",
	Short: "Validate a card design directory",
	Long: `Validate loads every design in the directory and reports schema
problems: missing fields, zone geometry outside the card face, designs
carrying both markup and zones, and so on.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		designDir := args[0]

		if _, err := os.Stat(designDir); os.IsNotExist(err) {
			return fmt.Errorf("design directory not found: %s", designDir)
		}

		store := catalog.NewDirStore(designDir)
		if err := store.Load(); err != nil {
			return fmt.Errorf("loading designs: %w", err)
		}

		okMark := color.New(color.FgGreen).SprintFunc()
		badMark := color.New(color.FgRed).SprintFunc()

		bad := 0
		for _, res := range catalog.ValidateCatalog(store) {
			if res.OK() {
				fmt.Printf("%s %s\n", okMark("ok"), res.DesignID)
				continue
			}
			bad++
			fmt.Printf("%s %s\n", badMark("!!"), res.DesignID)
			for _, p := range res.Problems {
				fmt.Printf("     %s\n", p)
			}
		}

		fmt.Printf("\n%d designs checked, %d with problems\n", store.Len(), bad)
		if bad > 0 {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}
