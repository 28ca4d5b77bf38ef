package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Dan9191/gcare-service/internal/engine"
	"github.com/Dan9191/gcare-service/internal/ingest"
	"github.com/Dan9191/gcare-service/internal/report"
)

// NewRootCommand creates the gcare command tree
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "gcare",
		Short:         "Household financial assessment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(EvaluateCommand(), CountriesCommand())
	return root
}

// EvaluateCommand creates the evaluate command
func EvaluateCommand() *cobra.Command {
	var (
		file   string
		format string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a household snapshot",
		Long: `Evaluate a household snapshot read from a JSON file and print the report.

Examples:
  # Print the full JSON report
  gcare evaluate --file snapshot.json

  # Print a readable summary from stdin
  cat snapshot.json | gcare evaluate --file - --format text`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, file, format, name)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Snapshot JSON file, - for stdin")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, xml or text")
	cmd.Flags().StringVar(&name, "name", "", "Assessment name shown in xml and text output")
	cmd.MarkFlagRequired("file")

	return cmd
}

func runEvaluate(cmd *cobra.Command, file, format, name string) error {
	var in io.Reader = cmd.InOrStdin()
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("failed to open snapshot: %w", err)
		}
		defer f.Close()
		in = f
	}

	snapshot, err := ingest.Decode(in)
	if err != nil {
		return err
	}
	if name == "" {
		name = snapshot.Profile.Name
	}
	r := engine.Evaluate(snapshot, engine.NewRegistry())
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "xml":
		doc, err := report.XML(name, r)
		if err != nil {
			return err
		}
		_, err = out.Write(doc)
		return err
	case "text":
		_, err := io.WriteString(out, report.Text(name, r))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// CountriesCommand creates the countries command
func CountriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List supported countries and their risk thresholds",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tCURRENCY\tDTI\tEXPENSES\tUNSECURED")
			for _, p := range engine.NewRegistry().Profiles() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%g/%g\t%g/%g\t%g/%g\n",
					p.Code, p.Name, p.CurrencyCode,
					p.DTI.LowMax, p.DTI.MediumMax,
					p.ExpenseRatio.LowMax, p.ExpenseRatio.MediumMax,
					p.UnsecuredExposureRatio.LowMax, p.UnsecuredExposureRatio.MediumMax)
			}
			return w.Flush()
		},
	}
}
