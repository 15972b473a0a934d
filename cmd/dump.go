package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/messbook/internal/cli"
	"github.com/theirongolddev/messbook/internal/mess"
	"github.com/theirongolddev/messbook/internal/source"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	flagExportOut     string
	flagImportReplace bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every record as a JSON dump",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import PATH",
	Short: "Load a JSON dump (file, or newest *.json in a directory)",
	Long: "Load a dump written by `messbook export` or a localStorage export of the web dashboard.\n" +
		"Keys present in the dump overwrite stored ones; --replace clears the rest first.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "", "Write to file instead of stdout")
	importCmd.Flags().BoolVar(&flagImportReplace, "replace", false, "Clear records missing from the dump")
	rootCmd.AddCommand(exportCmd, importCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	return withService(func(ctx context.Context, svc *mess.Service) error {
		d, err := source.Export(ctx, svc.Book().Store())
		if err != nil {
			return err
		}
		if flagExportOut == "" {
			return source.Write(os.Stdout, d)
		}

		f, err := os.OpenFile(flagExportOut, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("creating %s: %w", flagExportOut, err)
		}
		if err := source.Write(f, d); err != nil {
			_ = f.Close()
			return fmt.Errorf("writing %s: %w", flagExportOut, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		if !flagQuiet {
			fmt.Printf("  Exported %d keys to %s\n", len(d), flagExportOut)
		}
		return nil
	})
}

func runImport(_ *cobra.Command, args []string) error {
	path, err := resolveDumpPath(args[0])
	if err != nil {
		return err
	}
	res := source.ParseFile(path)
	if res.Err != nil {
		return fmt.Errorf("reading %s: %w", path, res.Err)
	}
	if len(res.Dump) == 0 {
		return fmt.Errorf("%s holds no messbook data", path)
	}

	return withService(func(ctx context.Context, svc *mess.Service) error {
		keys, err := source.Apply(ctx, svc.Book().Store(), res.Dump, flagImportReplace)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(keys)+len(res.Skipped))
		for _, k := range keys {
			rows = append(rows, []string{k, "imported", humanize.Bytes(uint64(len(res.Dump[k])))})
		}
		for _, s := range res.Skipped {
			rows = append(rows, []string{s.Key, "skipped: " + s.Reason, "-"})
		}
		fmt.Println(cli.RenderTitle("IMPORT  " + path))
		fmt.Print(cli.RenderTable(cli.Table{
			Headers:  []string{"Key", "Result", "Size"},
			Rows:     rows,
			TextCols: 2,
		}))
		if flagImportReplace {
			hint("Records missing from the dump were cleared.")
		}
		return nil
	})
}

// resolveDumpPath accepts a file, or a directory holding dumps.
func resolveDumpPath(p string) (string, error) {
	info, err := os.Stat(p)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return p, nil
	}
	files, err := source.ScanDir(p)
	if err != nil {
		return "", fmt.Errorf("scanning %s: %w", p, err)
	}
	if len(files) == 0 {
		return "", errors.New("no *.json dumps in " + p)
	}
	return files[0].Path, nil
}
