package ports

import (
	"context"

	"github.com/gradepeek/svue-api/internal/core/domain"
)

// GatewayService is the use-case layer behind the HTTP routes. The token is
// passed by pointer so the handler can detect a refreshed session.
type GatewayService interface {
	Gradebook(ctx context.Context, token *domain.AuthToken, reportPeriod *int) (*domain.Gradebook, error)
	StudentInfo(ctx context.Context, token *domain.AuthToken) (*domain.StudentInfo, error)
	StudentPhoto(ctx context.Context, token *domain.AuthToken) ([]byte, error)
	SchoolInfo(ctx context.Context, token *domain.AuthToken) (*domain.SchoolInfo, error)
	ListDocuments(ctx context.Context, token *domain.AuthToken) ([]domain.Document, error)
	GetDocument(ctx context.Context, token *domain.AuthToken, gu string) (*domain.DocumentContent, error)
}

// TokenSealer encrypts and decrypts AuthTokens under the process key.
type TokenSealer interface {
	Seal(token *domain.AuthToken) (string, error)
	Open(sealed string) (*domain.AuthToken, error)
}
