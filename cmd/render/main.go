package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/asset"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/cache"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/config"
	domainPdf "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/pdf"
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/httpclient"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/logger"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/pdf"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/repository"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
)

func main() {
	if err := run(context.Background(), os.Args, os.Stdin, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stderr io.Writer) error {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	log := logger.NewNoopLogger()
	if f.verbose {
		if log, err = logger.NewLogger(cfg); err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
	}

	source, err := repository.NewOrgProfileRepository(cfg, log)
	if err != nil {
		return err
	}
	profiles := cache.NewOrgProfileCache(source, cache.Initialize(cfg, log), types.SystemClock(), cfg, log)
	embedder := asset.NewEmbedder(cfg, httpclient.NewDefaultClient(cfg), log)
	generator := pdf.NewGenerator(cfg, profiles, embedder, nil, log)

	raw, err := readPayload(f.input, stdin)
	if err != nil {
		return err
	}

	out, err := render(ctx, generator, types.DocumentType(f.docType), raw, f.watermark)
	if err != nil {
		return err
	}

	if err := os.WriteFile(f.output, out, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}

	log.Infow("document written", "type", f.docType, "path", f.output, "size", len(out))
	return nil
}

func loadConfig(f *renderFlags) (*config.Configuration, error) {
	cfg := config.GetDefaultConfig()
	if f.useConfig {
		loaded, err := config.NewConfig()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUsage, err)
		}
		cfg = loaded
	}

	if cfg.Assets.DefaultWatermark == "" {
		cfg.Assets.DefaultWatermark = asset.BundledPrefix + "watermark.png"
	}
	if f.assetDir != "" {
		cfg.Assets.Dir = f.assetDir
	}
	if f.currency != "" {
		cfg.Render.Currency = f.currency
	}
	if f.orgName != "" {
		cfg.OrgProfile.Source = types.OrgProfileSourceStatic
		cfg.OrgProfile.Static.Name = f.orgName
	}
	return cfg, nil
}

func readPayload(path string, stdin io.Reader) ([]byte, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadPayload, err)
	}
	return raw, nil
}

func render(ctx context.Context, generator pdf.Generator, docType types.DocumentType, raw []byte, watermark string) ([]byte, error) {
	switch docType {
	case types.DocumentTypeInvoice:
		var data domainPdf.InvoiceData
		if err := decode(raw, &data); err != nil {
			return nil, err
		}
		if watermark != "" {
			data.Watermark = watermark
		}
		return generator.RenderInvoicePdf(ctx, &data)
	case types.DocumentTypeLedger:
		var data domainPdf.LedgerData
		if err := decode(raw, &data); err != nil {
			return nil, err
		}
		if watermark != "" {
			data.Watermark = watermark
		}
		return generator.RenderLedgerPdf(ctx, &data)
	default:
		var data domainPdf.ReportData
		if err := decode(raw, &data); err != nil {
			return nil, err
		}
		if watermark != "" {
			data.Watermark = watermark
		}
		return generator.RenderReportPdf(ctx, &data)
	}
}

func decode(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return ierr.WithError(err).
			WithHint("Payload is not valid JSON for this document type").
			Mark(ierr.ErrValidation)
	}
	return nil
}
