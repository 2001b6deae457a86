package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	"golang.org/x/sync/errgroup"

	"reqtool/internal/core"
	"reqtool/internal/ports"
	"reqtool/internal/shared"
	"reqtool/internal/types"
)

const defaultFetchWorkers = 8
const defaultHTTPTimeout = 60 * time.Second
const defaultHTTPRetries = 3
const defaultHTTPRetryDelay = 200 * time.Millisecond
const maxHTTPRetryDelay = 2 * time.Second

type httpRetryConfig struct {
	timeout   time.Duration
	retries   int
	baseDelay time.Duration
}

func normalizeHTTPConfig(timeoutSec int, retries int, delayMs int) httpRetryConfig {
	timeout := time.Duration(timeoutSec) * time.Second
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	retryCount := retries
	if retryCount <= 0 {
		retryCount = defaultHTTPRetries
	}
	baseDelay := time.Duration(delayMs) * time.Millisecond
	if baseDelay <= 0 {
		baseDelay = defaultHTTPRetryDelay
	}
	return httpRetryConfig{
		timeout:   timeout,
		retries:   retryCount,
		baseDelay: baseDelay,
	}
}

// PyPIIndexBuilderAdapter builds a package index by crawling a PyPI
// simple index (PEP 503 HTML listings) over HTTP.
type PyPIIndexBuilderAdapter struct{}

func NewPyPIIndexBuilderAdapter() PyPIIndexBuilderAdapter {
	return PyPIIndexBuilderAdapter{}
}

func (a PyPIIndexBuilderAdapter) Build(ctx context.Context, request ports.IndexBuildRequest) (types.PackageIndexFile, error) {
	simpleBase := normalizeSimpleIndex(request.SimpleIndex)
	if simpleBase == "" {
		return types.PackageIndexFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("simple index URL is required")
	}
	httpCfg := normalizeHTTPConfig(request.HTTPTimeoutSec, request.HTTPRetries, request.HTTPRetryDelayMs)

	names := normalizeNames(request.Packages)
	if len(names) == 0 {
		list, err := fetchPackageNames(ctx, simpleBase, request.User, request.APIKey, httpCfg)
		if err != nil {
			return types.PackageIndexFile{}, err
		}
		names = list
	}
	if request.MaxPackages > 0 && len(names) > request.MaxPackages {
		names = names[:request.MaxPackages]
	}

	index := types.PackageIndexFile{Packages: map[string][]string{}}
	if len(names) == 0 {
		return index, nil
	}

	workers := request.Workers
	if workers <= 0 {
		workers = defaultFetchWorkers
	}
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	var mu sync.Mutex
	for _, name := range names {
		name := name
		group.Go(func() error {
			versions, err := fetchPackageVersions(groupCtx, simpleBase, name, request.User, request.APIKey, httpCfg)
			if err != nil {
				return err
			}
			if len(versions) == 0 {
				return nil
			}
			mu.Lock()
			index.Packages[name] = versions
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return types.PackageIndexFile{}, err
	}
	return index, nil
}

func fetchPackageNames(ctx context.Context, simpleBase string, user string, apiKey string, httpCfg httpRetryConfig) ([]string, error) {
	resp, err := doRequest(ctx, simpleBase, user, apiKey, httpCfg)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to fetch simple index").
			WithCause(shared.HTTPStatusError(resp.StatusCode, simpleBase))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read simple index").
			WithCause(err)
	}
	names := parseSimpleNames(string(body))
	if len(names) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("simple index returned no packages")
	}
	return names, nil
}

func fetchPackageVersions(ctx context.Context, simpleBase string, name string, user string, apiKey string, httpCfg httpRetryConfig) ([]string, error) {
	url := strings.TrimRight(simpleBase, "/") + "/" + name + "/"
	resp, err := doRequest(ctx, url, user, apiKey, httpCfg)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to fetch package listing").
			WithCause(shared.HTTPStatusError(resp.StatusCode, url))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read package listing").
			WithCause(err)
	}
	versions := parseVersionsFromSimple(string(body))
	return core.SortVersions(versions), nil
}

func normalizeSimpleIndex(base string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(base), "/")
	if trimmed == "" {
		return ""
	}
	if strings.HasSuffix(trimmed, "/simple") {
		return trimmed + "/"
	}
	return trimmed + "/simple/"
}

var simpleAnchorPattern = regexp.MustCompile(`(?is)<a[^>]*>([^<]+)</a>`)
var simpleHrefPattern = regexp.MustCompile(`href=["']([^"']+)["']`)

func parseSimpleNames(content string) []string {
	matches := simpleAnchorPattern.FindAllStringSubmatch(content, -1)
	var names []string
	for _, match := range matches {
		name := strings.TrimSpace(match[1])
		if name == "" {
			continue
		}
		names = append(names, shared.NormalizeName(name))
	}
	sort.Strings(names)
	return shared.UniqueStrings(names)
}

func parseVersionsFromSimple(content string) []string {
	matches := simpleHrefPattern.FindAllStringSubmatch(content, -1)
	versions := map[string]struct{}{}
	for _, match := range matches {
		raw := strings.Split(match[1], "#")[0]
		raw = strings.Split(raw, "?")[0]
		filename := filepath.Base(raw)
		version := parseVersionFromFilename(filename)
		if version == "" {
			continue
		}
		if _, err := pep440.Parse(version); err != nil {
			continue
		}
		versions[version] = struct{}{}
	}
	out := make([]string, 0, len(versions))
	for version := range versions {
		out = append(out, version)
	}
	sort.Strings(out)
	return out
}

var wheelPattern = regexp.MustCompile(`^(.+?)-([0-9][^-]*)(?:-[^-]+)?-[^-]+-[^-]+-[^-]+\.whl$`)
var sdistPattern = regexp.MustCompile(`^(.+?)-([0-9][^-]*)\.(?:tar\.gz|zip|tar\.bz2|tar\.xz|tgz)$`)

func parseVersionFromFilename(filename string) string {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return ""
	}
	if match := wheelPattern.FindStringSubmatch(filename); len(match) == 3 {
		return match[2]
	}
	if match := sdistPattern.FindStringSubmatch(filename); len(match) == 3 {
		return match[2]
	}
	return ""
}

func normalizeNames(values []string) []string {
	var out []string
	for _, value := range values {
		name := strings.TrimSpace(value)
		if name == "" {
			continue
		}
		out = append(out, shared.NormalizeName(name))
	}
	return shared.UniqueStrings(out)
}

func doRequest(ctx context.Context, url string, user string, apiKey string, cfg httpRetryConfig) (*http.Response, error) {
	client := &http.Client{Timeout: cfg.timeout}
	var lastErr error
	for attempt := 0; attempt < cfg.retries; attempt++ {
		if ctx.Err() != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("request canceled").
				WithCause(ctx.Err())
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create request").
				WithCause(err)
		}
		if strings.TrimSpace(apiKey) != "" {
			authUser := strings.TrimSpace(user)
			if authUser == "" {
				authUser = "api"
			}
			req.SetBasicAuth(authUser, apiKey)
		}
		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("request canceled").
					WithCause(ctx.Err())
			}
			lastErr = err
			if attempt < cfg.retries-1 {
				if waitErr := waitRetry(ctx, httpRetryDelay(attempt, cfg)); waitErr != nil {
					return nil, waitErr
				}
				continue
			}
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("request failed").
				WithCause(err)
		}
		if (resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests) && attempt < cfg.retries-1 {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if waitErr := waitRetry(ctx, httpRetryDelay(attempt, cfg)); waitErr != nil {
				return nil, waitErr
			}
			continue
		}
		return resp, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("request failed")
	}
	return nil, errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("request failed").
		WithCause(lastErr)
}

// waitRetry sleeps for the backoff delay but returns immediately when
// the context is canceled.
func waitRetry(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("request canceled").
			WithCause(ctx.Err())
	case <-timer.C:
		return nil
	}
}

func httpRetryDelay(attempt int, cfg httpRetryConfig) time.Duration {
	delay := cfg.baseDelay * time.Duration(1<<attempt)
	if delay > maxHTTPRetryDelay {
		delay = maxHTTPRetryDelay
	}
	jitter := time.Duration(time.Now().UnixNano() % int64(delay/2+1))
	return delay + jitter
}

var _ ports.IndexBuilderPort = PyPIIndexBuilderAdapter{}
