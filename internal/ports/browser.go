package ports

import (
	"context"

	"github.com/aalvaropc/ghrepo/internal/domain"
)

// Browser is a stateful web session: cookies and the current page live in the instance.
// Implementations are not safe for concurrent use.
type Browser interface {
	Navigate(ctx context.Context, url string) (domain.Page, error)
	// SubmitForm submits the formNumber-th form (1-based) of the current page.
	SubmitForm(ctx context.Context, formNumber int, fields map[string]string) (domain.Page, error)
	// FollowLink follows the first link whose visible text equals text.
	FollowLink(ctx context.Context, text string) (domain.Page, error)
	Content() domain.Page
}
