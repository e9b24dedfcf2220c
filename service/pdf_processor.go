package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFProcessor turns statement bytes into the ordered tokens the matcher reads.
type PDFProcessor interface {
	ExtractTokens(pdfData []byte, password string) ([]string, error)
	ExtractImages(pdfData []byte, password string) ([]image.Image, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// Glyphs further apart than this many font sizes start a new token.
const (
	runGapEm   = 0.75
	spaceGapEm = 0.15
)

func (p *pdfProcessor) ExtractTokens(pdfData []byte, password string) ([]string, error) {
	if password != "" {
		decrypted, err := decrypt(pdfData, password)
		if err != nil {
			return nil, err
		}
		pdfData = decrypted
	}

	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var tokens []string
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", pageIndex, err)
		}
		for _, row := range rows {
			tokens = append(tokens, rowTokens(row.Content)...)
		}
	}
	return tokens, nil
}

// rowTokens joins the glyphs of one printed row into text runs. A wide
// horizontal gap separates columns and therefore tokens.
func rowTokens(texts []pdf.Text) []string {
	var tokens []string
	var run strings.Builder
	var end float64

	flush := func() {
		if s := strings.TrimSpace(run.String()); s != "" {
			tokens = append(tokens, s)
		}
		run.Reset()
	}

	for i, t := range texts {
		size := t.FontSize
		if size <= 0 {
			size = 1
		}
		if i > 0 {
			gap := t.X - end
			switch {
			case gap > runGapEm*size:
				flush()
			case gap > spaceGapEm*size && !strings.HasSuffix(run.String(), " "):
				run.WriteByte(' ')
			}
		}
		run.WriteString(t.S)
		end = t.X + t.W
	}
	flush()
	return tokens
}

func decrypt(pdfData []byte, password string) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password

	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(pdfData), &out, conf); err != nil {
		return nil, fmt.Errorf("failed to decrypt pdf: %w", err)
	}
	return out.Bytes(), nil
}

// ExtractImages returns the page images of a scanned statement.
func (p *pdfProcessor) ExtractImages(pdfData []byte, password string) ([]image.Image, error) {
	tempDir, err := os.MkdirTemp("", "paystub-images")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile, err := os.CreateTemp("", "paystub-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(pdfData); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}
	tempFile.Close()

	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
	}

	if err := api.ExtractImagesFile(tempFile.Name(), tempDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	files, err := os.ReadDir(tempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}

	var images []image.Image
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		imgFile, err := os.Open(filepath.Join(tempDir, file.Name()))
		if err != nil {
			continue
		}
		img, _, err := image.Decode(imgFile)
		imgFile.Close()
		if err != nil {
			continue
		}
		images = append(images, img)
	}
	return images, nil
}
