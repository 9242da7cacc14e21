package domain

import "strings"

// Document is a listing entry; GU is the handle used to download it.
type Document struct {
	Name     string `json:"name"`
	FileName string `json:"file_name"`
	Date     string `json:"date"`
	GU       string `json:"gu"`
}

// DocumentContent is a downloaded attachment.
type DocumentContent struct {
	FileName string
	Data     []byte
}

func (d *DocumentContent) IsPDF() bool {
	return strings.HasSuffix(strings.ToLower(d.FileName), ".pdf")
}
