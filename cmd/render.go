package cmd

import (
	"encoding/json/v2"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naderabdullah/cardforge/catalog"
	"github.com/naderabdullah/cardforge/contacts"
	"github.com/naderabdullah/cardforge/pdfs"
	fpdfcanvas "github.com/naderabdullah/cardforge/pdfs/impls/fpdf"
	"github.com/naderabdullah/cardforge/sheets"
)

// renderCmd - one-shot offline generation, no HTTP service involved.
var renderCmd = &cobra.Command{
	Use:   "render [design-id]",
	Short: "Render a card sheet PDF from the command line",
	Long: `Render loads a contact record from a JSON file, renders it onto the
named design, and writes the sheet PDF to a file.

Examples:
  cardforge render classic-01 --designs ./designs --contact ./contact.json --out cards.pdf
  cardforge render modern-03 --designs ./designs --contact ./contact.json --count 25`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		designID := args[0]
		designDir, _ := cmd.Flags().GetString("designs")
		contactPath, _ := cmd.Flags().GetString("contact")
		outPath, _ := cmd.Flags().GetString("out")
		cardCount, _ := cmd.Flags().GetInt("count")

		store := catalog.NewDirStore(designDir)
		if err := store.Load(); err != nil {
			return fmt.Errorf("loading designs: %w", err)
		}
		design, err := store.Find(designID)
		if err != nil {
			return err
		}

		contactBytes, err := os.ReadFile(contactPath)
		if err != nil {
			return fmt.Errorf("reading contact file: %w", err)
		}
		rec := &contacts.Record{}
		if err = json.Unmarshal(contactBytes, rec); err != nil {
			return fmt.Errorf("parsing contact file: %w", err)
		}
		if err = rec.Validate(); err != nil {
			return err
		}

		asm := sheets.NewAssembler(func() (pdfs.Canvas, error) {
			return fpdfcanvas.NewCanvas(pdfs.LetterSize), nil
		})

		var (
			out   []byte
			stats *sheets.Stats
		)
		if cardCount == 0 {
			out, stats, err = asm.GenerateSingleSheet(design, rec, 10)
		} else {
			out, stats, err = asm.GenerateDocument(design, rec, cardCount)
		}
		if err != nil {
			return fmt.Errorf("rendering: %w", err)
		}

		if err = os.WriteFile(outPath, out, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		fmt.Printf("%s: %d cards on %d pages (%d bytes)\n", outPath, stats.Rendered, stats.Pages, len(out))
		return nil
	},
}

func init() {
	renderCmd.Flags().String("designs", "./designs", "design catalog directory")
	renderCmd.Flags().String("contact", "", "path to the contact record JSON file")
	renderCmd.Flags().String("out", "cards.pdf", "output PDF path")
	renderCmd.Flags().Int("count", 0, "number of cards (0 = one full sheet)")
	_ = renderCmd.MarkFlagRequired("contact")
}
