package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ahrimdon/pdf417-decoder/internal/aamva"
	"github.com/Ahrimdon/pdf417-decoder/internal/barcode"
	"github.com/Ahrimdon/pdf417-decoder/internal/config"
	"github.com/Ahrimdon/pdf417-decoder/internal/pdf417"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// decodeOutput is the JSON shape printed for simple and full modes.
type decodeOutput struct {
	Fields   map[string]string `json:"fields"`
	IssuerID string            `json:"issuer_id,omitempty"`
	Version  int               `json:"version,omitempty"`
	Symbol   *symbolOutput     `json:"symbol,omitempty"`
}

type symbolOutput struct {
	Rows               int `json:"rows"`
	Columns            int `json:"columns"`
	SecurityLevel      int `json:"security_level"`
	CorrectedCodewords int `json:"corrected_codewords"`
}

// decodeCmd represents the decode command.
var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode a barcode payload into license fields",
	Long: `Decode PDF417 barcode data into the tagged fields it carries.

The input is a payload text file by default, a codeword matrix JSON file
with --matrix, or a barcode image with --image (requires a build with the
barcode_gozxing tag). Files with a common image extension are scanned as
images automatically. Reading from stdin uses "-" or no argument.

Examples:
  pdf417 decode license.txt
  pdf417 decode --simple license.txt
  pdf417 decode --matrix symbol.json
  pdf417 decode --image scan.png --try-harder`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		mode, err := decodeMode(cmd, cfg)
		if err != nil {
			return err
		}

		fromMatrix, _ := cmd.Flags().GetBool("matrix")
		fromImage, _ := cmd.Flags().GetBool("image")
		if fromMatrix && fromImage {
			return errors.New("--matrix and --image are mutually exclusive")
		}

		path := "-"
		if len(args) == 1 {
			path = args[0]
		}
		if !fromMatrix && !fromImage && isImagePath(path) {
			fromImage = true
		}

		var payload string
		var symbol *symbolOutput
		switch {
		case fromImage:
			payload, err = decodeImage(cmd.Context(), path, cfg)
		case fromMatrix:
			payload, symbol, err = decodeMatrixFile(path)
		default:
			payload, err = readInput(path)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if mode == config.ModeRaw {
			_, err = fmt.Fprintln(out, payload)
			return err
		}

		schema := aamva.FullSchema()
		if mode == config.ModeSimple {
			schema = aamva.SimpleSchema()
		}
		result := decodeOutput{
			Fields: aamva.Parse(payload).ToMap(schema),
			Symbol: symbol,
		}
		if env, ok := aamva.ParseEnvelope(payload); ok {
			result.IssuerID = env.IssuerID
			result.Version = env.Version
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

// decodeMode resolves the output mode from the mutually exclusive flags,
// falling back to the configured default.
func decodeMode(cmd *cobra.Command, cfg *config.Config) (string, error) {
	raw, _ := cmd.Flags().GetBool("raw")
	simple, _ := cmd.Flags().GetBool("simple")
	full, _ := cmd.Flags().GetBool("full")

	set := 0
	mode := cfg.Decode.Mode
	if raw {
		set++
		mode = config.ModeRaw
	}
	if simple {
		set++
		mode = config.ModeSimple
	}
	if full {
		set++
		mode = config.ModeFull
	}
	if set > 1 {
		return "", errors.New("--raw, --simple and --full are mutually exclusive")
	}
	return mode, nil
}

// isImagePath reports whether the input should be scanned as an image
// based on its extension.
func isImagePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tif", ".tiff":
		return true
	}
	return false
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func decodeMatrixFile(path string) (string, *symbolOutput, error) {
	data, err := readInput(path)
	if err != nil {
		return "", nil, err
	}
	var matrix pdf417.SymbolMatrix
	if err := json.Unmarshal([]byte(data), &matrix); err != nil {
		return "", nil, fmt.Errorf("invalid matrix JSON: %w", err)
	}
	result, err := pdf417.DecodeMatrix(&matrix)
	if err != nil {
		return "", nil, err
	}
	return string(result.Payload), &symbolOutput{
		Rows:               result.Rows,
		Columns:            result.Columns,
		SecurityLevel:      result.SecurityLevel,
		CorrectedCodewords: result.CorrectedCodewords,
	}, nil
}

func decodeImage(ctx context.Context, path string, cfg *config.Config) (string, error) {
	if path == "-" {
		return "", errors.New("--image requires a file path")
	}
	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image %s: %w", path, err)
	}

	backend, err := barcode.NewBackend()
	if err != nil {
		return "", err
	}
	results, err := backend.Scan(ctx, img, barcode.Options{TryHarder: cfg.Decode.TryHarder})
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", errors.New("no barcode found in image")
	}
	return results[0].Payload, nil
}

func init() {
	decodeCmd.Flags().Bool("raw", false, "print the raw payload without field extraction")
	decodeCmd.Flags().Bool("simple", false, "extract the common field subset")
	decodeCmd.Flags().Bool("full", false, "extract the full field registry")
	decodeCmd.Flags().Bool("matrix", false, "treat the input as codeword matrix JSON")
	decodeCmd.Flags().Bool("image", false, "scan the input as a barcode image")
	decodeCmd.Flags().Bool("try-harder", false, "spend more time scanning the image")

	_ = viper.BindPFlag("decode.try_harder", decodeCmd.Flags().Lookup("try-harder"))

	rootCmd.AddCommand(decodeCmd)
}
