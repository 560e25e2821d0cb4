package steam

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"steamwatch/internal/inventory"
)

// 中文说明：
// 公开库存抓取：直接 GET steamcommunity 的 inventory 端点，无需登录。
// 响应 schema 由 Steam 侧掌控，这里用 gjson 做宽松提取而不绑定结构体。

const (
	defaultBaseURL   = "https://steamcommunity.com"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Fetcher 抽象库存来源，monitor 只依赖这个接口。
type Fetcher interface {
	FetchInventory(ctx context.Context) (*inventory.Snapshot, error)
}

// Client fetches a public inventory over the community HTTP endpoint.
type Client struct {
	SteamID   string
	AppID     int
	ContextID int

	BaseURL string // overridable for tests
	Client  *http.Client
	nowFn   func() time.Time
}

// NewClient 构造公开端点抓取器。
func NewClient(steamID string, appID, contextID int, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		SteamID:   steamID,
		AppID:     appID,
		ContextID: contextID,
		BaseURL:   defaultBaseURL,
		Client:    &http.Client{Timeout: timeout},
		nowFn:     time.Now,
	}
}

// FetchInventory performs one GET against the inventory endpoint and maps the
// body into a Snapshot. 非 200 状态按错误分类返回，绝不返回半截快照。
func (c *Client) FetchInventory(ctx context.Context) (*inventory.Snapshot, error) {
	url := fmt.Sprintf("%s/inventory/%s/%d/%d", c.BaseURL, c.SteamID, c.AppID, c.ContextID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch inventory: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden:
		io.Copy(io.Discard, resp.Body)
		return nil, ErrPrivateInventory
	case http.StatusBadRequest, http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		io.Copy(io.Discard, resp.Body)
		return nil, ErrRateLimited
	default:
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch inventory: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read inventory body: %w", err)
	}
	return c.parseBody(body)
}

func (c *Client) parseBody(body []byte) (*inventory.Snapshot, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("inventory body is not valid json")
	}
	parsed := gjson.ParseBytes(body)
	if success := parsed.Get("success"); success.Exists() && success.Int() != 1 {
		return nil, ErrNotFound
	}

	now := time.Now()
	if c.nowFn != nil {
		now = c.nowFn()
	}
	snap := inventory.NewSnapshot(now)

	parsed.Get("assets").ForEach(func(_, asset gjson.Result) bool {
		assetID := asset.Get("assetid").String()
		if assetID == "" {
			return true
		}
		instanceID := asset.Get("instanceid").String()
		if instanceID == "" {
			instanceID = "0"
		}
		amount := asset.Get("amount").Int()
		if amount <= 0 {
			amount = 1
		}
		snap.Items[assetID] = inventory.Item{
			AssetID:    assetID,
			ClassID:    asset.Get("classid").String(),
			InstanceID: instanceID,
			Amount:     amount,
		}
		return true
	})

	parsed.Get("descriptions").ForEach(func(_, desc gjson.Result) bool {
		classID := desc.Get("classid").String()
		if classID == "" {
			return true
		}
		instanceID := desc.Get("instanceid").String()
		if instanceID == "" {
			instanceID = "0"
		}
		snap.Descriptions[inventory.DescriptionKey(classID, instanceID)] = inventory.Description{
			ClassID:        classID,
			InstanceID:     instanceID,
			Name:           desc.Get("name").String(),
			MarketHashName: desc.Get("market_hash_name").String(),
			IconURL:        desc.Get("icon_url").String(),
		}
		return true
	})

	return snap, nil
}
