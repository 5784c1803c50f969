package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReceiptText(t *testing.T) {
	text := "\n  QUICK MART\n123 Main St\n06/15/2025\nTOTAL: $12.34\n"
	data := ParseReceiptText(text)

	assert.Equal(t, "QUICK MART", data.Merchant)
	assert.Equal(t, "06/15/2025", data.Date)
	require.NotNil(t, data.Total)
	assert.EqualValues(t, 1234, *data.Total)
	assert.Equal(t, text, data.RawText)
}

func TestParseReceiptTextVariants(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		merchant  string
		date      string
		wantTotal *int64
	}{
		{
			name:      "dashed total and date",
			text:      "Corner Cafe\n1-2-25\ntotal - 5.50",
			merchant:  "Corner Cafe",
			date:      "1-2-25",
			wantTotal: ptrInt64(550),
		},
		{
			name:     "no recognizable fields",
			text:     "????\n....",
			merchant: "????",
		},
		{
			name:     "blank text",
			text:     "   \n  ",
			merchant: "Unknown",
		},
		{
			name:      "total without cents is ignored",
			text:      "Shop\nTotal: 12",
			merchant:  "Shop",
			wantTotal: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := ParseReceiptText(tt.text)
			assert.Equal(t, tt.merchant, data.Merchant)
			assert.Equal(t, tt.date, data.Date)
			if tt.wantTotal == nil {
				assert.Nil(t, data.Total)
			} else {
				require.NotNil(t, data.Total)
				assert.Equal(t, *tt.wantTotal, *data.Total)
			}
		})
	}
}

type stubRecognizer struct {
	text string
	err  error
}

func (s stubRecognizer) ExtractText(ctx context.Context, imagePath string) (string, error) {
	return s.text, s.err
}

func TestReceiptServiceProcessRemovesStagedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipt.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpg"), 0o644))

	svc := NewReceiptService(stubRecognizer{text: "Store\nTotal: $3.00"})
	data, err := svc.Process(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Store", data.Merchant)
	require.NotNil(t, data.Total)
	assert.EqualValues(t, 300, *data.Total)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "staged file should be removed")
}
