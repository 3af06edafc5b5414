// Command bindery is the command line interface for scanning a book
// directory, previewing the proposed renames, applying them, and
// undoing the last applied batch.

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tmalloy/bindery/internal/core"
	"github.com/tmalloy/bindery/internal/i18n"
	"github.com/tmalloy/bindery/internal/library"
	"github.com/tmalloy/bindery/internal/models"
	"github.com/tmalloy/bindery/internal/update"
)

const appVersion = "0.2.1"

var (
	flagDir         string
	flagLang        string
	flagJSON        bool
	flagYes         bool
	flagAllowOCR    bool
	flagAllowOnline bool

	tr *i18n.Translator
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bindery",
		Short: "Rename ebook files from their embedded metadata",
		Long: "Bindery scans a directory of EPUB and PDF files and renames them\n" +
			"to Title-Author-Year.ext, derived from their embedded metadata.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			tr = i18n.New(flagLang)
			if flagAllowOCR {
				log.Println("OCR-based extraction is not available in this build; ignoring --allow-ocr")
			}
			if flagAllowOnline {
				log.Println("Online metadata lookup is not available in this build; ignoring --allow-online")
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "d", "", "directory to scan (default: configured library path)")
	rootCmd.PersistentFlags().StringVar(&flagLang, "lang", "", "interface language (default: system locale)")
	rootCmd.PersistentFlags().BoolVar(&flagAllowOCR, "allow-ocr", false, "allow OCR fallback for scanned PDFs (reserved)")
	rootCmd.PersistentFlags().BoolVar(&flagAllowOnline, "allow-online", false, "allow online metadata lookup (reserved)")

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a directory and preview the proposed renames",
		RunE:  runScan,
	}
	scanCmd.Flags().BoolVar(&flagJSON, "json", false, "print the rename plans as JSON")

	applyCmd := &cobra.Command{
		Use:   "apply",
		Short: "Scan a directory and apply the proposed renames",
		RunE:  runApply,
	}
	applyCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "apply without asking for confirmation")

	undoCmd := &cobra.Command{
		Use:   "undo",
		Short: "Revert the most recently applied rename batch",
		RunE:  runUndo,
	}

	updateCmd := &cobra.Command{
		Use:   "check-update",
		Short: "Check whether a newer release is available",
		RunE:  runCheckUpdate,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the bindery version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(appVersion)
		},
	}

	rootCmd.AddCommand(scanCmd, applyCmd, undoCmd, updateCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup initializes the full application and resolves the target
// directory from the --dir flag or the configured library path.
func setup() (*core.App, string, error) {
	app, err := core.New(appVersion)
	if err != nil {
		return nil, "", fmt.Errorf("application setup failed: %w", err)
	}
	// The --lang flag wins over the configured language.
	if flagLang == "" && app.Config().Language != "" {
		tr.SetLang(app.Config().Language)
	}
	dir := flagDir
	if dir == "" {
		dir = app.Config().Library.Path
	}
	return app, dir, nil
}

// scanBatch runs a directory scan and reports how many files would
// actually change name.
func scanBatch(app *core.App, dir string) (models.Batch, int, error) {
	batch, err := library.ScanDirectory(app, dir)
	if err != nil {
		return nil, 0, err
	}
	pending := 0
	for _, plan := range batch {
		if !plan.Same() {
			pending++
		}
	}
	return batch, pending, nil
}

func renderBatch(batch models.Batch) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{
		tr.T("col_current_name", nil),
		tr.T("col_new_name", nil),
		tr.T("col_warnings", nil),
	})
	for _, plan := range batch {
		if plan.Same() {
			continue
		}
		t.AppendRow(table.Row{plan.Source.Name(), plan.ProposedName, plan.Warning.String()})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

func runScan(cmd *cobra.Command, args []string) error {
	app, dir, err := setup()
	if err != nil {
		return err
	}
	defer app.Close()

	batch, pending, err := scanBatch(app, dir)
	if err != nil {
		return err
	}

	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(batch)
	}

	if pending == 0 {
		fmt.Println(tr.T("no_changes", nil))
		return nil
	}
	renderBatch(batch)
	fmt.Println(tr.T("scan_complete", map[string]string{"count": fmt.Sprint(pending)}))
	return nil
}

func runApply(cmd *cobra.Command, args []string) error {
	app, dir, err := setup()
	if err != nil {
		return err
	}
	defer app.Close()

	batch, pending, err := scanBatch(app, dir)
	if err != nil {
		return err
	}
	if pending == 0 {
		fmt.Println(tr.T("no_changes", nil))
		return nil
	}

	renderBatch(batch)
	if !flagYes && !confirm(fmt.Sprintf("Rename %d file(s)?", pending)) {
		fmt.Println("Aborted.")
		return nil
	}

	result, err := library.Apply(app, dir, batch)
	if err != nil {
		return err
	}
	fmt.Println(tr.T("rename_complete", map[string]string{"count": fmt.Sprint(result.Renamed)}))
	return nil
}

func runUndo(cmd *cobra.Command, args []string) error {
	app, _, err := setup()
	if err != nil {
		return err
	}
	defer app.Close()

	restored, err := library.UndoLast(app)
	if err != nil {
		return err
	}
	fmt.Println(tr.T("undo_complete", map[string]string{"count": fmt.Sprint(restored)}))
	return nil
}

func runCheckUpdate(cmd *cobra.Command, args []string) error {
	app, _, err := setup()
	if err != nil {
		return err
	}
	defer app.Close()

	result, err := update.Check(app.Config().UpdateURL, appVersion)
	if err != nil {
		fmt.Println(tr.T("update_check_failed", map[string]string{"error": err.Error()}))
		return nil
	}
	if !result.UpdateAvailable {
		fmt.Println(tr.T("up_to_date", map[string]string{"version": result.CurrentVersion}))
		return nil
	}
	fmt.Println(tr.T("update_available", map[string]string{
		"latest":  result.LatestVersion,
		"current": result.CurrentVersion,
	}))
	if result.ReleaseURL != "" {
		fmt.Println(result.ReleaseURL)
	}
	return nil
}

// confirm prompts on stdin and accepts y/yes.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
