package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/pricebook-cli/internal/importer"
)

var (
	importYes bool
	importNo  bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import CSV files or Excel workbooks as price lists",
	Long: `Each CSV file becomes one price list named after the file. Each sheet of an
.xlsx, .xlsm, or .xls workbook becomes a price list named <sheet>_<file>.
When a name is already registered you are asked whether to overwrite it;
declining skips only that file or sheet.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if importYes && importNo {
			return fmt.Errorf("specify at most one of --yes or --no")
		}
		svc, err := newService()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		var confirm importer.Confirmer
		switch {
		case importYes:
			confirm = importer.Always(true)
		case importNo:
			confirm = importer.Always(false)
		default:
			confirm = promptConfirmer(cmd.InOrStdin(), out)
		}
		for _, path := range args {
			rep, err := svc.ImportFile(path, confirm)
			if rep != nil {
				printImportReport(out, rep)
			}
			if err != nil {
				return err
			}
		}
		return nil
	},
}

// promptConfirmer asks on out and reads a y/N answer from in.
func promptConfirmer(in io.Reader, out io.Writer) importer.Confirmer {
	br := bufio.NewReader(in)
	return importer.ConfirmFunc(func(name string) (bool, error) {
		fmt.Fprintf(out, "%s already exists. Overwrite the old file? [y/N]: ", name)
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		if errors.Is(err, io.EOF) && line == "" {
			// No answer on a closed input declines.
			fmt.Fprintln(out)
			return false, nil
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	})
}

func printImportReport(w io.Writer, rep *importer.Report) {
	src := filepath.Base(rep.Source)
	for _, u := range rep.Units {
		switch u.Outcome {
		case importer.Created:
			fmt.Fprintf(w, "✓ Imported %s from %s\n", u.Name, src)
		case importer.Overwritten:
			fmt.Fprintf(w, "✓ Overwrote %s from %s\n", u.Name, src)
		case importer.Skipped:
			fmt.Fprintf(w, "⚠ Skipped %s: %v\n", u.Name, u.Err)
		}
	}
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "overwrite existing price lists without asking")
	importCmd.Flags().BoolVar(&importNo, "no", false, "skip existing price lists without asking")
}
