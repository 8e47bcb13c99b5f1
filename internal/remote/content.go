package remote

import (
	"context"
	"time"

	domainerrors "vetgate/pkg/domain-errors"
)

// PublicProjects lists all public support programs.
func (c *Client) PublicProjects(ctx context.Context) ([]Project, error) {
	started := time.Now()
	var envelope projectsEnvelope
	res, err := c.http.R().SetContext(ctx).SetResult(&envelope).Get(epPublicProjects)
	if err := c.finish(epPublicProjects, res, err, started); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// ProjectBySlug fetches one program's detail page data.
func (c *Client) ProjectBySlug(ctx context.Context, slug string) (ProjectDetail, error) {
	started := time.Now()
	var envelope projectDetailEnvelope
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("slug", slug).
		SetResult(&envelope).
		Get(epProjectBySlug)
	if err := c.finish(epProjectBySlug, res, err, started); err != nil {
		return ProjectDetail{}, err
	}
	if !envelope.Success {
		return ProjectDetail{}, domainerrors.New(domainerrors.CodeNotFound, "program not found")
	}
	return envelope.Data, nil
}

// UserProjectStatus returns the caller's participation in a program, or nil
// when not enrolled.
func (c *Client) UserProjectStatus(ctx context.Context, projectID int) (*Participation, error) {
	started := time.Now()
	var envelope participationEnvelope
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("project_id", atoiQuery(projectID)).
		SetResult(&envelope).
		Get(epUserProjectStatus)
	if err := c.finish(epUserProjectStatus, res, err, started); err != nil {
		return nil, err
	}
	return envelope.Data.Participation, nil
}

// NewsList fetches one page of news. An empty category means all news.
func (c *Client) NewsList(ctx context.Context, limit, offset int, category string) (NewsList, error) {
	started := time.Now()
	var out NewsList
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("limit", atoiQuery(limit)).
		SetQueryParam("offset", atoiQuery(offset)).
		SetResult(&out)
	if category != "" {
		req.SetQueryParam("category", category)
	}
	res, err := req.Get(epNewsList)
	if err := c.finish(epNewsList, res, err, started); err != nil {
		return NewsList{}, err
	}
	return out, nil
}

// NewsArticle fetches one article by ID.
func (c *Client) NewsArticle(ctx context.Context, id int) (NewsItem, error) {
	started := time.Now()
	var envelope newsArticleEnvelope
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("id", atoiQuery(id)).
		SetResult(&envelope).
		Get(epNewsArticle)
	if err := c.finish(epNewsArticle, res, err, started); err != nil {
		return NewsItem{}, err
	}
	if !envelope.Success {
		return NewsItem{}, domainerrors.New(domainerrors.CodeNotFound, "article not found")
	}
	return envelope.Data, nil
}
