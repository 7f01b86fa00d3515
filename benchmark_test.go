// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trie/blob/master/LICENSE.txt.

package trie

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// From https://github.com/julienschmidt/go-http-routing-benchmark, one entry per distinct path.
var githubRoutes = []string{
	"/authorizations",
	"/authorizations/:id",
	"/applications/:client_id/tokens/:access_token",
	"/applications/:client_id/tokens",
	"/events",
	"/repos/:owner/:repo/events",
	"/networks/:owner/:repo/events",
	"/orgs/:org/events",
	"/users/:user/received_events",
	"/users/:user/received_events/public",
	"/users/:user/events",
	"/users/:user/events/public",
	"/users/:user/events/orgs/:org",
	"/feeds",
	"/notifications",
	"/repos/:owner/:repo/notifications",
	"/notifications/threads/:id",
	"/notifications/threads/:id/subscription",
	"/repos/:owner/:repo/stargazers",
	"/users/:user/starred",
	"/user/starred",
	"/user/starred/:owner/:repo",
	"/repos/:owner/:repo/subscribers",
	"/users/:user/subscriptions",
	"/user/subscriptions",
	"/repos/:owner/:repo/subscription",
	"/user/subscriptions/:owner/:repo",
	"/users/:user/gists",
	"/gists",
	"/gists/:id",
	"/gists/:id/star",
	"/repos/:owner/:repo/git/blobs/:sha",
	"/repos/:owner/:repo/git/commits/:sha",
	"/repos/:owner/:repo/git/refs",
	"/repos/:owner/:repo/git/tags/:sha",
	"/repos/:owner/:repo/git/trees/:sha",
	"/issues",
	"/user/issues",
	"/orgs/:org/issues",
	"/repos/:owner/:repo/issues",
	"/repos/:owner/:repo/issues/:number",
	"/repos/:owner/:repo/assignees",
	"/repos/:owner/:repo/assignees/:assignee",
	"/repos/:owner/:repo/issues/:number/comments",
	"/repos/:owner/:repo/issues/:number/events",
	"/repos/:owner/:repo/labels",
	"/repos/:owner/:repo/labels/:name",
	"/repos/:owner/:repo/issues/:number/labels",
	"/repos/:owner/:repo/milestones/:number/labels",
	"/repos/:owner/:repo/milestones",
	"/repos/:owner/:repo/milestones/:number",
	"/emojis",
	"/gitignore/templates",
	"/gitignore/templates/:name",
	"/markdown",
	"/markdown/raw",
	"/meta",
	"/rate_limit",
	"/users/:user/orgs",
	"/user/orgs",
	"/orgs/:org",
	"/orgs/:org/members",
	"/orgs/:org/members/:user",
	"/orgs/:org/public_members",
	"/orgs/:org/public_members/:user",
	"/orgs/:org/teams",
	"/teams/:id",
	"/teams/:id/members",
	"/teams/:id/members/:user",
	"/teams/:id/repos",
	"/teams/:id/repos/:owner/:repo",
	"/user/teams",
	"/repos/:owner/:repo/pulls",
	"/repos/:owner/:repo/pulls/:number",
	"/repos/:owner/:repo/pulls/:number/commits",
	"/repos/:owner/:repo/pulls/:number/files",
	"/repos/:owner/:repo/pulls/:number/merge",
	"/repos/:owner/:repo/pulls/:number/comments",
	"/user/repos",
	"/users/:user/repos",
	"/orgs/:org/repos",
	"/repositories",
	"/repos/:owner/:repo",
	"/repos/:owner/:repo/contributors",
	"/repos/:owner/:repo/languages",
	"/repos/:owner/:repo/teams",
	"/repos/:owner/:repo/tags",
	"/repos/:owner/:repo/branches",
	"/repos/:owner/:repo/branches/:branch",
	"/repos/:owner/:repo/collaborators",
	"/repos/:owner/:repo/collaborators/:user",
	"/repos/:owner/:repo/comments",
	"/repos/:owner/:repo/commits/:sha/comments",
	"/repos/:owner/:repo/comments/:id",
	"/repos/:owner/:repo/commits",
	"/repos/:owner/:repo/commits/:sha",
	"/repos/:owner/:repo/readme",
	"/repos/:owner/:repo/keys",
	"/repos/:owner/:repo/keys/:id",
	"/repos/:owner/:repo/downloads",
	"/repos/:owner/:repo/downloads/:id",
	"/repos/:owner/:repo/forks",
	"/repos/:owner/:repo/hooks",
	"/repos/:owner/:repo/hooks/:id",
	"/repos/:owner/:repo/releases",
	"/repos/:owner/:repo/releases/:id",
	"/repos/:owner/:repo/releases/:id/assets",
	"/repos/:owner/:repo/stats/contributors",
	"/repos/:owner/:repo/stats/commit_activity",
	"/repos/:owner/:repo/stats/code_frequency",
	"/repos/:owner/:repo/stats/participation",
	"/repos/:owner/:repo/stats/punch_card",
	"/repos/:owner/:repo/statuses/:ref",
	"/search/repositories",
	"/search/code",
	"/search/issues",
	"/search/users",
	"/legacy/issues/search/:owner/:repository/:state/:keyword",
	"/legacy/repos/search/:keyword",
	"/legacy/user/search/:keyword",
	"/legacy/user/email/:email",
	"/users/:user",
	"/user",
	"/users",
	"/user/emails",
	"/users/:user/followers",
	"/user/followers",
	"/users/:user/following",
	"/user/following",
	"/user/following/:user",
	"/users/:user/following/:target_user",
	"/users/:user/keys",
	"/user/keys",
	"/user/keys/:id",
}

// requestPath turns a route pattern into a concrete request path, replacing every parameter with value.
func requestPath(pattern, value string) string {
	parts := strings.Split(pattern, "/")
	for i, part := range parts {
		if strings.HasPrefix(part, ":") {
			parts[i] = value
		}
	}
	return strings.Join(parts, "/")
}

func benchRouter(b *testing.B, routes []string) *Router[int] {
	builder := newTestBuilder[int](b)
	for i, rte := range routes {
		require.NoError(b, builder.Insert(i, ParsePattern(rte)...))
	}
	return builder.Build()
}

func benchRoutes(b *testing.B, r *Router[int], paths [][]string) {
	params := new(Params)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for _, path := range paths {
			params.Reset()
			r.Route(path, params)
		}
	}
}

func BenchmarkGithubAll(b *testing.B) {
	r := benchRouter(b, githubRoutes)
	paths := make([][]string, 0, len(githubRoutes))
	for _, rte := range githubRoutes {
		paths = append(paths, splitPath(requestPath(rte, "value")))
	}
	benchRoutes(b, r, paths)
}

func BenchmarkGithubAllGin(b *testing.B) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	for _, rte := range githubRoutes {
		r.GET(rte, func(c *gin.Context) {})
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	u := req.URL
	paths := make([]string, 0, len(githubRoutes))
	for _, rte := range githubRoutes {
		paths = append(paths, requestPath(rte, "value"))
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for _, path := range paths {
			req.RequestURI = path
			u.Path = path
			r.ServeHTTP(w, req)
		}
	}
}

func BenchmarkGithubAllChi(b *testing.B) {
	r := chi.NewRouter()
	for _, rte := range githubRoutes {
		parts := strings.Split(rte, "/")
		for i, part := range parts {
			if strings.HasPrefix(part, ":") {
				parts[i] = "{" + part[1:] + "}"
			}
		}
		r.Get(strings.Join(parts, "/"), func(w http.ResponseWriter, r *http.Request) {})
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	u := req.URL
	paths := make([]string, 0, len(githubRoutes))
	for _, rte := range githubRoutes {
		paths = append(paths, requestPath(rte, "value"))
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for _, path := range paths {
			req.RequestURI = path
			u.Path = path
			r.ServeHTTP(w, req)
		}
	}
}

func BenchmarkGithubParam(b *testing.B) {
	r := benchRouter(b, githubRoutes)
	path := []string{"repos", "tigerwill90", "trie", "hooks", "1500"}
	params := new(Params)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		params.Reset()
		r.Route(path, params)
	}
}

func BenchmarkGithubParamParallel(b *testing.B) {
	r := benchRouter(b, githubRoutes)
	path := []string{"repos", "tigerwill90", "trie", "hooks", "1500"}

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		params := new(Params)
		for pb.Next() {
			params.Reset()
			r.Route(path, params)
		}
	})
}

func BenchmarkPartial(b *testing.B) {
	r := benchRouter(b, []string{
		"/assets/{name}.{ext}",
		"/assets/{name}.min.js",
		"/assets/app-{version}.css",
	})
	path := []string{"assets", "vendor.bundle.min.js"}
	params := new(Params)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		params.Reset()
		r.Route(path, params)
	}
}

func BenchmarkCatchall(b *testing.B) {
	r := benchRouter(b, []string{"/something/**", "/something/else/entirely"})
	path := []string{"something", "else", "awesome"}
	params := new(Params)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		params.Reset()
		r.Route(path, params)
	}
}

func BenchmarkCaseInsensitive(b *testing.B) {
	builder := newTestBuilder[int](b, WithCaseInsensitive(true))
	for i, rte := range githubRoutes {
		builder.Register(i, ParsePattern(rte)...)
	}
	r := builder.Build()
	path := []string{"Repos", "tigerwill90", "trie", "Hooks", "1500"}
	params := new(Params)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		params.Reset()
		r.Route(path, params)
	}
}

func BenchmarkInsert(b *testing.B) {
	components := make([][]PathComponent, 0, len(githubRoutes))
	for _, rte := range githubRoutes {
		components = append(components, ParsePattern(rte))
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		builder := newTestBuilder[int](b)
		for j, path := range components {
			_ = builder.Insert(j, path...)
		}
		builder.Build()
	}
}

func BenchmarkLiveRegister(b *testing.B) {
	l, err := NewLive[int](WithLogHandler(quietHandler))
	require.NoError(b, err)
	defer l.Close()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = l.Register(context.Background(), i, Constant("bench"), Parameter("id"))
	}
}
