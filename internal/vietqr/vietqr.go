// Package vietqr builds settlement QR image URLs for bank transfer
// payments. Pure string construction; nothing depends on the image
// content beyond embedding it in the invoice.
package vietqr

import (
	"fmt"
	"net/url"

	"github.com/nhanban-huy/nhan-ban-photo-print/internal/config"
)

type Builder struct {
	bank config.BankConfig
}

func NewBuilder(bank config.BankConfig) *Builder {
	return &Builder{bank: bank}
}

// ImageURL returns the VietQR image URL for the given amount and
// free-text transfer description.
func (b *Builder) ImageURL(amount int64, description string) string {
	return fmt.Sprintf(
		"https://img.vietqr.io/image/%s-%s-%s.png?amount=%d&addInfo=%s&accountName=%s",
		b.bank.BankID,
		b.bank.AccountNo,
		b.bank.Template,
		amount,
		url.QueryEscape(description),
		url.QueryEscape(b.bank.AccountName),
	)
}
