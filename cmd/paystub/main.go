package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Aashish23092/paystub-extraction/client"
	"github.com/Aashish23092/paystub-extraction/config"
	"github.com/Aashish23092/paystub-extraction/dto"
	"github.com/Aashish23092/paystub-extraction/export"
	"github.com/Aashish23092/paystub-extraction/service"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// invocation is the parsed command line. Format flags and --password may be
// interleaved with document references; the last format flag wins and a
// password applies to the references that follow it.
type invocation struct {
	format  export.Format
	out     string
	workers int
	verbose bool
	docs    []dto.DocumentMeta
}

func parseArgs(args []string, cfg *config.Config, stderr io.Writer) (*invocation, error) {
	inv := &invocation{
		format:  export.FormatCSV,
		workers: cfg.Batch.Concurrency,
		verbose: cfg.Log.Verbose,
	}
	if f, err := export.ParseFormat(cfg.Export.Format); err == nil {
		inv.format = f
	}

	var password string
	fs := flag.NewFlagSet("paystub", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolFunc("json", "write records as JSON", func(string) error { inv.format = export.FormatJSON; return nil })
	fs.BoolFunc("csv", "write records as CSV (default)", func(string) error { inv.format = export.FormatCSV; return nil })
	fs.BoolFunc("xlsx", "write records as an XLSX workbook", func(string) error { inv.format = export.FormatXLSX; return nil })
	fs.StringVar(&inv.out, "out", "", "output file (default stdout)")
	fs.IntVar(&inv.workers, "workers", inv.workers, "documents parsed concurrently")
	fs.BoolVar(&inv.verbose, "v", inv.verbose, "trace tokens and tree events to stderr")
	fs.StringVar(&password, "password", "", "password for the encrypted statements that follow")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: paystub [--json|--csv|--xlsx] [--out file] [--workers n] [-v] [--password p] statement.pdf|s3://bucket/key ...\n")
		fs.PrintDefaults()
	}

	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			break
		}
		inv.docs = append(inv.docs, dto.DocumentMeta{Filename: fs.Arg(0), Password: password})
		rest = fs.Args()[1:]
	}

	if len(inv.docs) == 0 {
		fs.Usage()
		return nil, dto.ErrNoDocuments
	}
	if inv.workers < 1 {
		inv.workers = 1
	}
	return inv, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	log.SetOutput(stderr)

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "paystub: loading config: %v\n", err)
		return 1
	}

	inv, err := parseArgs(args, cfg, stderr)
	if err != nil {
		return 1
	}

	ctx := context.Background()
	source := client.MultiSource{Local: client.LocalSource{}}
	for _, d := range inv.docs {
		if client.IsS3Ref(d.Filename) {
			s3Source, err := client.NewS3Source(ctx, cfg.S3)
			if err != nil {
				fmt.Fprintf(stderr, "paystub: %v\n", err)
				return 1
			}
			source.S3 = s3Source
			break
		}
	}

	var ocr service.OCRClient
	if cfg.OCR.Enabled {
		tesseract := client.NewTesseractClient(cfg.Tesseract.DataPath)
		defer tesseract.Close()
		ocr = tesseract
	}

	svc := service.NewPaystubService(service.NewPDFProcessor(), ocr, service.Options{
		Concurrency: inv.workers,
		MinTokens:   cfg.OCR.MinTokens,
		Hooks:       service.LogHooks(inv.verbose),
	})

	var failures []dto.DocumentFailure
	docs := make([]dto.Document, 0, len(inv.docs))
	for _, d := range inv.docs {
		data, err := source.Fetch(ctx, d.Filename)
		if err != nil {
			failures = append(failures, dto.DocumentFailure{
				Filename: d.Filename,
				Kind:     dto.FailureSource,
				Error:    err.Error(),
			})
			continue
		}
		docs = append(docs, dto.Document{
			Meta: dto.DocumentMeta{Filename: client.DisplayName(d.Filename), Password: d.Password},
			Data: data,
		})
	}

	result := svc.ParseBatch(ctx, docs)
	failures = append(failures, result.Failures...)
	for _, f := range failures {
		fmt.Fprintf(stderr, "paystub: %s: %s failure: %s\n", f.Filename, f.Kind, f.Error)
	}

	out := stdout
	if inv.out != "" {
		file, err := os.Create(inv.out)
		if err != nil {
			fmt.Fprintf(stderr, "paystub: %v\n", err)
			return 1
		}
		defer file.Close()
		out = file
	}

	opts := export.Options{FilenameLast: cfg.Export.FilenameLast}
	if err := export.Write(inv.format, out, result.Records, opts); err != nil {
		fmt.Fprintf(stderr, "paystub: writing output: %v\n", err)
		return 1
	}

	if len(failures) > 0 {
		return 1
	}
	return 0
}
