package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tripdiary/internal/client/models"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 8 << 20

// Options configures an HTTPClient. Zero values fall back to the defaults
// of the production backend.
type Options struct {
	BaseURL    string
	FolderPath string
	DiaryPath  string
	FeedPath   string

	// RequestsPerSecond <= 0 disables throttling.
	RequestsPerSecond float64
	Burst             int

	HTTPClient *http.Client
}

type HTTPClient struct {
	baseURL    string
	folderBase string
	diaryBase  string
	feedURL    string
	http       *http.Client
	limiter    *rate.Limiter
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(opts Options) (*HTTPClient, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", opts.BaseURL)
	}

	if opts.FolderPath == "" {
		opts.FolderPath = "/api/folder"
	}
	if opts.DiaryPath == "" {
		opts.DiaryPath = "/api/diary"
	}
	if opts.FeedPath == "" {
		opts.FeedPath = "/diaries/public"
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return &HTTPClient{
		baseURL:    base,
		folderBase: base + opts.FolderPath,
		diaryBase:  base + opts.DiaryPath,
		feedURL:    base + opts.FeedPath,
		http:       hc,
		limiter:    limiter,
	}, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do sends the request and returns the body of a 2xx answer. Transport
// failures are wrapped with ErrUnavailable, other statuses become
// *StatusError.
func (c *HTTPClient) do(ctx context.Context, method, target, contentType string, body io.Reader) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	return b, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, target string, payload any) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, method, target, "application/json", bytes.NewReader(b))
}

// Ping probes the base URL. Anything but 200 counts as offline.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}

func (c *HTTPClient) ListFolders(ctx context.Context) (*FolderList, error) {
	b, err := c.do(ctx, http.MethodGet, c.folderBase+"/list", "", nil)
	if err != nil {
		return nil, err
	}
	return decodeFolderList(b)
}

func (c *HTTPClient) CreateFolder(ctx context.Context, p models.FolderParams) (*int64, error) {
	b, err := c.doJSON(ctx, http.MethodPost, c.folderBase, p)
	if err != nil {
		return nil, err
	}
	return decodeCreatedFolderID(b), nil
}

func (c *HTTPClient) GetFolderDetail(ctx context.Context, folderID string) (*FolderDetail, error) {
	b, err := c.do(ctx, http.MethodGet, c.folderBase+"/"+url.PathEscape(folderID), "", nil)
	if err != nil {
		return nil, err
	}
	return decodeFolderDetail(b)
}

func (c *HTTPClient) UpdateFolder(ctx context.Context, folderID int64, p models.FolderPatch) error {
	b, err := c.doJSON(ctx, http.MethodPut, c.folderBase+"/"+strconv.FormatInt(folderID, 10), p)
	if err != nil {
		return err
	}
	return checkResultCode(b)
}

func (c *HTTPClient) DeleteFolder(ctx context.Context, folderID int64) error {
	b, err := c.do(ctx, http.MethodDelete, c.folderBase+"/"+strconv.FormatInt(folderID, 10), "", nil)
	if err != nil {
		return err
	}
	return checkResultCode(b)
}

func (c *HTTPClient) CreateDiary(ctx context.Context, r CreateDiaryRequest) (*CreatedDiary, error) {
	body, contentType, err := encodeDiaryUpload(r)
	if err != nil {
		return nil, err
	}
	b, err := c.do(ctx, http.MethodPost, c.diaryBase, contentType, body)
	if err != nil {
		return nil, err
	}
	return decodeCreatedDiary(b)
}

func (c *HTTPClient) GetDiary(ctx context.Context, diaryID string) (*DiaryDetail, error) {
	b, err := c.do(ctx, http.MethodGet, c.diaryBase+"/"+url.PathEscape(diaryID), "", nil)
	if err != nil {
		return nil, err
	}
	return decodeDiaryDetail(b)
}

func (c *HTTPClient) ListPublicDiaries(ctx context.Context) ([]models.PublicDiary, error) {
	b, err := c.do(ctx, http.MethodGet, c.feedURL, "", nil)
	if err != nil {
		return nil, err
	}
	return decodePublicDiaries(b)
}
