// Package service wraps each backend area in a typed client. Every method is
// one HTTP call; errors are returned as *apiclient.Error untouched.
package service

import (
	"context"
	"net/url"
	"strconv"

	"codebenders/internal/dto"
)

// Requester is the subset of apiclient.Client the services need.
type Requester interface {
	Get(ctx context.Context, path string, query url.Values, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	PostForm(ctx context.Context, path string, form url.Values, out interface{}) error
	Patch(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string, out interface{}) error
}

func scopeQuery(scope dto.Scope) url.Values {
	q := url.Values{}
	if scope.UserId != nil {
		q.Set("user_id", *scope.UserId)
	}
	if scope.ProjectId != nil {
		q.Set("project_id", *scope.ProjectId)
	}
	return q
}

func setPaging(q url.Values, page, size int, search string) {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	if search != "" {
		q.Set("search", search)
	}
}

func setBool(q url.Values, key string, v *bool) {
	if v != nil {
		q.Set(key, strconv.FormatBool(*v))
	}
}
