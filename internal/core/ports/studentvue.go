package ports

import (
	"context"

	"github.com/gradepeek/svue-api/internal/core/domain"
)

// StudentVueClient talks to a district's PXP web service. Every call may
// replace token.Cookie with a fresh upstream session.
type StudentVueClient interface {
	Gradebook(ctx context.Context, token *domain.AuthToken, reportPeriod *int) (*domain.Gradebook, error)
	StudentInfo(ctx context.Context, token *domain.AuthToken) (*domain.StudentInfo, []byte, error)
	SchoolInfo(ctx context.Context, token *domain.AuthToken) (*domain.SchoolInfo, error)
	ListDocuments(ctx context.Context, token *domain.AuthToken) ([]domain.Document, error)
	GetDocument(ctx context.Context, token *domain.AuthToken, gu string) (*domain.DocumentContent, error)
}

// VersionKeyProvider yields the edupointkeyversion presented upstream.
type VersionKeyProvider interface {
	VersionKey(ctx context.Context) (string, error)
}
