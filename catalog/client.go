package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ludokit/ludokit/core"
)

// DefaultBaseURL 是 RAWG 风格目录 API 的默认地址。
const DefaultBaseURL = "https://api.rawg.io/api"

const defaultPageSize = 5

// Client 是外部游戏目录的 HTTP 客户端，实现 core.CatalogService。
// 检索分两步：search 端点取候选列表，details 端点取完整详情，
// 最终归一化为 core.Game。
type Client struct {
	// BaseURL 目录 API 根地址，默认 DefaultBaseURL
	BaseURL string

	// APIKey 目录 API 的访问密钥
	APIKey string

	// HTTPClient 可注入自定义客户端（测试/代理），默认 10s 超时
	HTTPClient *http.Client
}

// NewClient 创建目录客户端。
func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

var _ core.CatalogService = (*Client)(nil)

// searchResponse 是 search 端点的线上格式。
type searchResponse struct {
	Count   int `json:"count"`
	Results []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"results"`
}

// gameDetails 是 details 端点的线上格式：类型/平台是嵌套对象，归一化时拍平。
type gameDetails struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	Released    string  `json:"released"`
	Platforms   []struct {
		Platform struct {
			Name string `json:"name"`
		} `json:"platform"`
	} `json:"platforms"`
	Genres []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Developers []struct {
		Name string `json:"name"`
	} `json:"developers"`
	Publishers []struct {
		Name string `json:"name"`
	} `json:"publishers"`
	BackgroundImage string `json:"background_image"`
	Metacritic      int    `json:"metacritic"`
	ESRBRating      *struct {
		Name string `json:"name"`
	} `json:"esrb_rating"`
}

// Search 检索并返回最佳匹配（搜索结果的第一条）的完整详情。
func (c *Client) Search(ctx context.Context, query string) (*core.Game, error) {
	ids, err := c.search(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, core.ErrCatalogNoResults
	}
	return c.Details(ctx, ids[0])
}

// SearchAll 检索并返回前 limit 条匹配的完整详情，详情请求并发执行。
func (c *Client) SearchAll(ctx context.Context, query string, limit int) ([]*core.Game, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	ids, err := c.search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, core.ErrCatalogNoResults
	}

	games := make([]*core.Game, len(ids))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		eg.Go(func() error {
			g, err := c.Details(egCtx, id)
			if err != nil {
				return err
			}
			games[i] = g
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return games, nil
}

// search 调 search 端点，返回按相关度排序的游戏 ID。
func (c *Client) search(ctx context.Context, query string, limit int) ([]int64, error) {
	params := url.Values{}
	params.Set("key", c.APIKey)
	params.Set("search", query)
	params.Set("page_size", strconv.Itoa(limit))

	var resp searchResponse
	if err := c.getJSON(ctx, "/games?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("catalog search: %w", err)
	}

	ids := make([]int64, 0, len(resp.Results))
	for _, r := range resp.Results {
		ids = append(ids, r.ID)
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// Details 取单个游戏的完整详情并归一化为 core.Game。
func (c *Client) Details(ctx context.Context, id int64) (*core.Game, error) {
	params := url.Values{}
	params.Set("key", c.APIKey)

	var details gameDetails
	path := fmt.Sprintf("/games/%d?%s", id, params.Encode())
	if err := c.getJSON(ctx, path, &details); err != nil {
		return nil, fmt.Errorf("catalog details: %w", err)
	}

	return details.normalize(), nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// normalize 将线上格式拍平为领域记录，描述去掉 HTML 标签。
func (d *gameDetails) normalize() *core.Game {
	g := &core.Game{
		ID:              d.ID,
		Name:            d.Name,
		Description:     StripHTML(d.Description),
		Rating:          d.Rating,
		Released:        d.Released,
		BackgroundImage: d.BackgroundImage,
		Metacritic:      d.Metacritic,
	}
	for _, p := range d.Platforms {
		g.Platforms = append(g.Platforms, p.Platform.Name)
	}
	for _, x := range d.Genres {
		g.Genres = append(g.Genres, x.Name)
	}
	for _, x := range d.Developers {
		g.Developers = append(g.Developers, x.Name)
	}
	for _, x := range d.Publishers {
		g.Publishers = append(g.Publishers, x.Name)
	}
	if d.ESRBRating != nil {
		g.ESRBRating = d.ESRBRating.Name
	}
	return g
}
