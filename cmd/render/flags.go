package main

import (
	"fmt"
	"io"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
	flag "github.com/spf13/pflag"
)

type renderFlags struct {
	docType   string
	input     string
	output    string
	watermark string
	assetDir  string
	currency  string
	orgName   string
	useConfig bool
	verbose   bool
}

func parseFlags(args []string, stderr io.Writer) (*renderFlags, error) {
	f := &renderFlags{}
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: render --type invoice|ledger|report --input payload.json --output out.pdf")
		fs.PrintDefaults()
	}

	fs.StringVarP(&f.docType, "type", "t", "", "document type: invoice, ledger or report")
	fs.StringVarP(&f.input, "input", "i", "-", "JSON payload file, - for stdin")
	fs.StringVarP(&f.output, "output", "o", "", "PDF output path (default <type>.pdf)")
	fs.StringVar(&f.watermark, "watermark", "", "watermark reference (URL, file name or bundled:<name>); overrides the payload")
	fs.StringVar(&f.assetDir, "asset-dir", "", "directory searched before the bundled assets")
	fs.StringVar(&f.currency, "currency", "", "ISO currency code for amounts")
	fs.StringVar(&f.orgName, "org-name", "", "issuing organization name when no profile source is configured")
	fs.BoolVar(&f.useConfig, "use-config", false, "load config.yaml and MEDBILL_ environment variables")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log to stderr")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if err := types.DocumentType(f.docType).Validate(); err != nil {
		return nil, fmt.Errorf("%w: --type must be invoice, ledger or report", ErrUsage)
	}
	if f.output == "" {
		f.output = f.docType + ".pdf"
	}
	return f, nil
}
