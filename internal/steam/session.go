package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/chromedp/chromedp"

	"steamwatch/internal/inventory"
)

// 中文说明：
// 会话抓取：私密库存公开端点拿不到，改为附着在一个已登录 Steam 的浏览器上，
// 打开库存页并读取页面内的 g_ActiveInventory 对象。浏览器由外部启动并开启
// remote debugging，本进程只通过 devtools URL 附着，不管理其生命周期。

// SessionClient fetches an inventory through a logged-in browser session.
type SessionClient struct {
	SteamID     string
	DevtoolsURL string
	Timeout     time.Duration
	nowFn       func() time.Time

	// runFn is swapped in tests to avoid driving a real browser.
	runFn func(ctx context.Context, raw *string) error
}

// NewSessionClient 构造私密库存抓取器。
func NewSessionClient(steamID, devtoolsURL string, timeout time.Duration) *SessionClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	c := &SessionClient{
		SteamID:     steamID,
		DevtoolsURL: devtoolsURL,
		Timeout:     timeout,
		nowFn:       time.Now,
	}
	c.runFn = c.runBrowser
	return c
}

const inventoryExtractJS = `JSON.stringify(g_ActiveInventory && g_ActiveInventory.rgInventory || {})`

// FetchInventory navigates the inventory page inside the attached session and
// evaluates the page-level inventory object.
func (c *SessionClient) FetchInventory(ctx context.Context) (*inventory.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	var raw string
	if err := c.runFn(ctx, &raw); err != nil {
		return nil, fmt.Errorf("session fetch: %w", err)
	}
	return c.parseSessionInventory(raw)
}

func (c *SessionClient) runBrowser(ctx context.Context, raw *string) error {
	allocCtx, cancelAlloc := chromedp.NewRemoteAllocator(ctx, c.DevtoolsURL)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	url := fmt.Sprintf("https://steamcommunity.com/profiles/%s/inventory/", c.SteamID)
	return chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(".inventory_page", chromedp.ByQuery),
		chromedp.Evaluate(inventoryExtractJS, raw),
	)
}

// parseSessionInventory maps the rgInventory object (keyed by asset id) into a
// Snapshot. 字段与公开端点不同：id/classid/instanceid/amount 都是字符串。
func (c *SessionClient) parseSessionInventory(raw string) (*inventory.Snapshot, error) {
	var entries map[string]struct {
		ID             string `json:"id"`
		ClassID        string `json:"classid"`
		InstanceID     string `json:"instanceid"`
		Amount         string `json:"amount"`
		Name           string `json:"name"`
		MarketHashName string `json:"market_hash_name"`
	}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("parse rgInventory: %w", err)
	}

	now := time.Now()
	if c.nowFn != nil {
		now = c.nowFn()
	}
	snap := inventory.NewSnapshot(now)
	for assetID, e := range entries {
		if e.ID != "" {
			assetID = e.ID
		}
		instanceID := e.InstanceID
		if instanceID == "" {
			instanceID = "0"
		}
		amount, err := strconv.ParseInt(e.Amount, 10, 64)
		if err != nil || amount <= 0 {
			amount = 1
		}
		snap.Items[assetID] = inventory.Item{
			AssetID:    assetID,
			ClassID:    e.ClassID,
			InstanceID: instanceID,
			Amount:     amount,
		}
		if e.Name != "" || e.MarketHashName != "" {
			snap.Descriptions[inventory.DescriptionKey(e.ClassID, instanceID)] = inventory.Description{
				ClassID:        e.ClassID,
				InstanceID:     instanceID,
				Name:           e.Name,
				MarketHashName: e.MarketHashName,
			}
		}
	}
	return snap, nil
}
