package service

import (
	"context"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Recognizer extracts raw text from a receipt image. The OCR engine itself
// is an external collaborator.
type Recognizer interface {
	ExtractText(ctx context.Context, imagePath string) (string, error)
}

// ReceiptData is what could be parsed out of a receipt's text.
type ReceiptData struct {
	Merchant string `json:"merchant"`
	Date     string `json:"date,omitempty"`
	Total    *int64 `json:"total,omitempty"` // smallest currency unit
	RawText  string `json:"rawText"`
}

var (
	receiptTotalRe = regexp.MustCompile(`(?i)total\s*[:\-]?\s*\$?(\d+\.\d{2})`)
	receiptDateRe  = regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)
)

// ParseReceiptText pulls merchant, date and total out of OCR text. The
// merchant is taken to be the first non-blank line.
func ParseReceiptText(text string) ReceiptData {
	data := ReceiptData{Merchant: "Unknown", RawText: text}

	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			data.Merchant = line
			break
		}
	}

	if m := receiptDateRe.FindStringSubmatch(text); m != nil {
		data.Date = m[1]
	}

	if m := receiptTotalRe.FindStringSubmatch(text); m != nil {
		// the regex guarantees a d+.dd shape, so the cents are the last two digits
		digits := strings.Replace(m[1], ".", "", 1)
		if v, err := strconv.ParseInt(digits, 10, 64); err == nil {
			data.Total = &v
		}
	}

	return data
}

// ReceiptService turns an uploaded receipt image into structured data.
type ReceiptService struct {
	recognizer Recognizer
}

func NewReceiptService(recognizer Recognizer) *ReceiptService {
	return &ReceiptService{recognizer: recognizer}
}

// Process extracts and parses the receipt, then removes the staged file.
func (s *ReceiptService) Process(ctx context.Context, imagePath string) (*ReceiptData, error) {
	text, err := s.recognizer.ExtractText(ctx, imagePath)
	if err != nil {
		return nil, err
	}

	data := ParseReceiptText(text)

	if err := os.Remove(imagePath); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).WithField("path", imagePath).Warn("remove staged receipt failed")
	}
	return &data, nil
}
