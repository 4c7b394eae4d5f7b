package chart

import (
	"bytes"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestTrackerWritesPNG(t *testing.T) {
	months := []model.MonthStats{
		{Month: "2026-10", Portfolio: decimal.NewFromInt(130500)},
		{Month: "2026-09", Portfolio: decimal.NewFromInt(-4000)},
	}
	var buf bytes.Buffer
	if err := Tracker(&buf, months, nil); err != nil {
		t.Fatalf("Tracker: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Fatal("output is not a PNG")
	}
}

func TestTrackerEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Tracker(&buf, nil, nil); !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
}

func TestSavingsMixSkipsZero(t *testing.T) {
	var buf bytes.Buffer
	err := SavingsMix(&buf, []model.SavingsTypeStats{{Type: model.SavingsStocks, Amount: decimal.Zero}})
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
}
