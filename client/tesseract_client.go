package client

import (
	"fmt"
	"log"

	"github.com/otiai10/gosseract/v2"
)

const defaultTessdataPath = "/usr/share/tesseract-ocr/5/tessdata/"

type TesseractClient struct {
	dataPath string
	language string
}

func NewTesseractClient(dataPath string) *TesseractClient {
	if dataPath == "" {
		dataPath = defaultTessdataPath
	}
	return &TesseractClient{
		dataPath: dataPath,
		language: "eng",
	}
}

// ExtractTextAndQuality runs OCR over a page image and returns the text with
// the mean word confidence (0-100). Confidence is 0 when boxes are unavailable.
func (tc *TesseractClient) ExtractTextAndQuality(filePath string) (string, float64, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetTessdataPrefix(tc.dataPath); err != nil {
		return "", 0, fmt.Errorf("failed to set tessdata path: %w", err)
	}
	if err := client.SetLanguage(tc.language); err != nil {
		return "", 0, fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		return "", 0, fmt.Errorf("failed to set page segmentation: %w", err)
	}

	if err := client.SetImage(filePath); err != nil {
		return "", 0, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("failed to extract text: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return text, 0, nil
	}

	var totalConf float64
	for _, box := range boxes {
		totalConf += box.Confidence
	}

	avgConf := 0.0
	if len(boxes) > 0 {
		avgConf = totalConf / float64(len(boxes))
	}

	return text, avgConf, nil
}

// Close performs cleanup
func (tc *TesseractClient) Close() {
	log.Println("Tesseract client closed")
}
