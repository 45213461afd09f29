package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/barscript/barscript/pkg/barcsv"
	"github.com/barscript/barscript/pkg/script"
)

var (
	evalExpr    string
	barsPath    string
	setOverride []string
	historyCap  int
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a barscript file or expression against a bar manifest",
	Long: `Compile and execute a barscript program bar by bar.

Examples:
  # Run a script file against a CSV bar manifest
  barscript run strategy.bar --bars bars.csv

  # Run with a YAML manifest and a --set override
  barscript run strategy.bar --bars bars.yaml --set bars.0.close=105.25

  # Evaluate an inline expression with no bars (single synthetic bar)
  barscript run -e "log.info(str.tostring(close))"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().StringVar(&barsPath, "bars", "", "bar manifest file (.csv, .yaml, .yml)")
	runCmd.Flags().StringArrayVar(&setOverride, "set", nil, "override a field in the bar manifest, path=value (repeatable)")
	runCmd.Flags().IntVar(&historyCap, "history", 512, "number of historical bars kept per series for lookback/ta.* builtins")
}

func runScript(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	scr, err := script.Compile(source, script.WithHistoryCapacity(historyCap))
	if err != nil {
		if cerr, ok := err.(*script.CompileError); ok {
			fmt.Fprintln(os.Stderr, cerr.Error())
			return fmt.Errorf("compiling %s failed", displayName(filename))
		}
		return err
	}

	bars, err := loadBars(barsPath, setOverride)
	if err != nil {
		return err
	}

	sink := scr.Sink()
	for i, bar := range bars {
		logBefore, plotBefore := len(sink.Logs()), len(sink.Plots())
		if _, err := scr.Execute(bar); err != nil {
			return fmt.Errorf("bar %d: %w", i, err)
		}
		for _, entry := range sink.Logs()[logBefore:] {
			fmt.Printf("[bar %d] %s: %s\n", i, entry.Level, entry.Message)
		}
		for _, p := range sink.Plots()[plotBefore:] {
			fmt.Printf("[bar %d] plot %s = %v\n", i, p.Title, p.Value)
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "executed %d bar(s); %d log entr(y/ies), %d plot point(s), %d label(s), %d box(es)\n",
			len(bars), len(sink.Logs()), len(sink.Plots()), len(sink.Labels()), len(sink.Boxes()))
	}
	return nil
}

func readSource(evalExpr string, args []string) (source, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
}

func displayName(filename string) string {
	if filename == "" {
		return "<eval>"
	}
	return filename
}

func loadBars(path string, sets []string) ([]script.Bar, error) {
	if path == "" {
		if len(sets) > 0 {
			return nil, fmt.Errorf("--set requires --bars")
		}
		return []script.Bar{{}}, nil
	}
	m, err := barcsv.Load(path, sets)
	if err != nil {
		return nil, err
	}
	return m.ToBars(), nil
}
