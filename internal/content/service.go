// Package content serves the public reads of the portal: paginated news and
// the support-program catalog, both backed by the platform API.
package content

import (
	"context"
	"log/slog"

	"vetgate/internal/remote"
	domainerrors "vetgate/pkg/domain-errors"
)

// News categories accepted by the platform.
const (
	CategoryGeneral        = "general"
	CategoryProjectRelated = "project_related"
)

// Pagination defaults matching the portal's listing pages.
const (
	DefaultNewsLimit  = 10
	HomePageNewsLimit = 4
	MaxNewsLimit      = 50
)

// API is the slice of the platform client the content reads use.
type API interface {
	PublicProjects(ctx context.Context) ([]remote.Project, error)
	ProjectBySlug(ctx context.Context, slug string) (remote.ProjectDetail, error)
	UserProjectStatus(ctx context.Context, projectID int) (*remote.Participation, error)
	NewsList(ctx context.Context, limit, offset int, category string) (remote.NewsList, error)
	NewsArticle(ctx context.Context, id int) (remote.NewsItem, error)
}

// NewsPage is one page of news with the cursor facts a client needs to page
// further.
type NewsPage struct {
	Items   []remote.NewsItem `json:"items"`
	Total   int               `json:"total"`
	Limit   int               `json:"limit"`
	Offset  int               `json:"offset"`
	HasMore bool              `json:"has_more"`
}

// Service exposes the content reads.
type Service struct {
	api    API
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(api API, opts ...Option) *Service {
	s := &Service{api: api, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// News returns one page of news. Limits are clamped to the portal's bounds
// and unknown categories are rejected before hitting the platform.
func (s *Service) News(ctx context.Context, limit, offset int, category string) (NewsPage, error) {
	if limit <= 0 {
		limit = DefaultNewsLimit
	}
	if limit > MaxNewsLimit {
		limit = MaxNewsLimit
	}
	if offset < 0 {
		offset = 0
	}
	if category != "" && category != CategoryGeneral && category != CategoryProjectRelated {
		return NewsPage{}, domainerrors.Newf(domainerrors.CodeBadRequest, "unknown news category %q", category)
	}

	list, err := s.api.NewsList(ctx, limit, offset, category)
	if err != nil {
		return NewsPage{}, err
	}
	return NewsPage{
		Items:   list.News,
		Total:   list.Total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+len(list.News) < list.Total,
	}, nil
}

// HomeNews is the short uncategorized list shown on the landing page.
func (s *Service) HomeNews(ctx context.Context) ([]remote.NewsItem, error) {
	list, err := s.api.NewsList(ctx, HomePageNewsLimit, 0, "")
	if err != nil {
		return nil, err
	}
	return list.News, nil
}

// Article fetches one news article.
func (s *Service) Article(ctx context.Context, id int) (remote.NewsItem, error) {
	if id <= 0 {
		return remote.NewsItem{}, domainerrors.New(domainerrors.CodeBadRequest, "article id must be positive")
	}
	return s.api.NewsArticle(ctx, id)
}

// Programs lists all public support programs.
func (s *Service) Programs(ctx context.Context) ([]remote.Project, error) {
	return s.api.PublicProjects(ctx)
}

// ProgramDetail is a program page joined with the caller's participation,
// when one exists.
type ProgramDetail struct {
	remote.ProjectDetail
	Participation *remote.Participation `json:"participation,omitempty"`
}

// Program fetches one program by slug. When a session is live the caller's
// participation is attached; a status-lookup failure degrades to the bare
// program rather than failing the page.
func (s *Service) Program(ctx context.Context, slug string, authenticated bool) (ProgramDetail, error) {
	if slug == "" {
		return ProgramDetail{}, domainerrors.New(domainerrors.CodeBadRequest, "program slug required")
	}
	detail, err := s.api.ProjectBySlug(ctx, slug)
	if err != nil {
		return ProgramDetail{}, err
	}

	out := ProgramDetail{ProjectDetail: detail}
	if authenticated {
		participation, err := s.api.UserProjectStatus(ctx, detail.ID)
		if err != nil {
			s.logger.Warn("participation lookup failed", "slug", slug, "error", err)
		} else {
			out.Participation = participation
		}
	}
	return out, nil
}
