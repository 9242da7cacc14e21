package studentvue

import (
	"context"
	"fmt"

	"github.com/gradepeek/svue-api/internal/core/domain"
)

func (c *Client) ListDocuments(ctx context.Context, token *domain.AuthToken) ([]domain.Document, error) {
	result, err := c.Call(ctx, token, MethodListDocuments, "")
	if err != nil {
		return nil, err
	}

	var docs studentDocumentsXML
	if err := decodeResult(MethodListDocuments, result, &docs); err != nil {
		return nil, err
	}

	out := make([]domain.Document, 0, len(docs.Documents))
	for _, d := range docs.Documents {
		out = append(out, domain.Document{
			Name:     d.DocumentComment,
			FileName: d.DocumentFileName,
			Date:     d.DocumentDate,
			GU:       d.DocumentGU,
		})
	}
	return out, nil
}

// GetDocument downloads one attachment by its GU.
func (c *Client) GetDocument(ctx context.Context, token *domain.AuthToken, gu string) (*domain.DocumentContent, error) {
	result, err := c.Call(ctx, token, MethodGetDocument, param("DocumentGU", gu))
	if err != nil {
		return nil, err
	}

	var attached attachedDocumentXML
	if err := decodeResult(MethodGetDocument, result, &attached); err != nil {
		return nil, err
	}

	if attached.Document == nil || attached.Document.Base64Code == nil {
		return nil, fmt.Errorf("%s: %w: missing document data", MethodGetDocument, domain.ErrUpstreamParse)
	}
	data, err := decodeBase64(*attached.Document.Base64Code)
	if err != nil {
		return nil, fmt.Errorf("%s: content: %w: %v", MethodGetDocument, domain.ErrUpstreamParse, err)
	}

	return &domain.DocumentContent{
		FileName: attached.Document.FileName,
		Data:     data,
	}, nil
}

type studentDocumentsXML struct {
	StudentGU string                   `xml:"StudentGU,attr"`
	Documents []studentDocumentDataXML `xml:"StudentDocumentDatas>StudentDocumentData"`
}

type studentDocumentDataXML struct {
	DocumentGU       string `xml:"DocumentGU,attr"`
	DocumentFileName string `xml:"DocumentFileName,attr"`
	DocumentDate     string `xml:"DocumentDate,attr"`
	DocumentType     string `xml:"DocumentType,attr"`
	StudentGU        string `xml:"StudentGU,attr"`
	DocumentComment  string `xml:"DocumentComment,attr"`
}

type attachedDocumentXML struct {
	Document *documentDataXML `xml:"DocumentDatas>DocumentData"`
}

type documentDataXML struct {
	DocumentGU string  `xml:"DocumentGU,attr"`
	StudentGU  string  `xml:"StudentGU,attr"`
	DocDate    string  `xml:"DocDate,attr"`
	FileName   string  `xml:"FileName,attr"`
	Category   string  `xml:"Category,attr"`
	Notes      string  `xml:"Notes,attr"`
	DocType    string  `xml:"DocType,attr"`
	Base64Code *string `xml:"Base64Code"`
}
