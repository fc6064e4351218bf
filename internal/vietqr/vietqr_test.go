package vietqr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nhanban-huy/nhan-ban-photo-print/internal/config"
)

func TestImageURL(t *testing.T) {
	b := NewBuilder(config.BankConfig{
		BankID:      "vietinbank",
		AccountNo:   "100000713992",
		AccountName: "NGUYEN DINH HUY",
		Template:    "compact",
	})

	got := b.ImageURL(55000, "NB-1234")
	require.Equal(t,
		"https://img.vietqr.io/image/vietinbank-100000713992-compact.png?amount=55000&addInfo=NB-1234&accountName=NGUYEN+DINH+HUY",
		got)
}

func TestImageURLEscapesDescription(t *testing.T) {
	b := NewBuilder(config.BankConfig{
		BankID:      "vietinbank",
		AccountNo:   "100000713992",
		AccountName: "NGUYEN DINH HUY",
		Template:    "compact",
	})

	got := b.ImageURL(1000, "thanh toán & phí")
	require.Contains(t, got, "addInfo=thanh+to%C3%A1n+%26+ph%C3%AD")
}
