package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"mspro-labs/tapboard/internal/config"
	"mspro-labs/tapboard/internal/models"
	"mspro-labs/tapboard/internal/scraper"
)

var parseKind string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Extract records from a saved HTML page",
	Long: `Runs one extractor over a local HTML file (or stdin when no file or "-" is given)
and prints the records as JSON. No network access is made.

Examples:
  tapboard parse --kind checkins feed.html
  curl -s https://example.com/taps | tapboard parse --kind taps`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		if err := runParse(parseKind, name, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			log.Fatalf("Parse failed: %v", err)
		}
	},
}

func init() {
	parseCmd.Flags().StringVarP(&parseKind, "kind", "k", string(models.KindCheckins), "page kind: checkins or taps")
	rootCmd.AddCommand(parseCmd)
}

func runParse(kindName, name string, stdin io.Reader, out io.Writer) error {
	kind, ok := models.ParseKind(kindName)
	if !ok {
		return fmt.Errorf("unknown page kind %q (want checkins or taps)", kindName)
	}

	appCfg, err := config.GetAppConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	siteCfg, err := config.LoadSiteConfig(appCfg.ConfigPath)
	if err != nil {
		return err
	}

	html, err := readInput(name, stdin)
	if err != nil {
		return err
	}

	// Parsing never touches the fetcher.
	svc := scraper.NewService(nil, siteCfg, nil)
	records, err := svc.Parse(kind, html)
	if err != nil {
		return err
	}
	return printJSON(out, records)
}

// readInput reads the named file, or stdin for "" and "-".
func readInput(name string, stdin io.Reader) (string, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read '%s': %w", name, err)
	}
	return string(data), nil
}
