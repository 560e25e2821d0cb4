package notifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Bark 推送器（iOS，https://bark.day.app/），标题和内容走 URL 路径。
type Bark struct {
	DeviceKey string
	BaseURL   string // overridable for tests
	Client    *http.Client
}

func NewBark(deviceKey string) *Bark {
	return &Bark{
		DeviceKey: deviceKey,
		BaseURL:   "https://api.day.app",
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SendChanges renders the summary as plain text for the Bark URL path.
func (b *Bark) SendChanges(ctx context.Context, title string, msg ChangeMessage) error {
	return b.SendText(ctx, title, msg.RenderText())
}

func (b *Bark) SendText(ctx context.Context, title, text string) error {
	if b.DeviceKey == "" {
		return fmt.Errorf("bark: device key 未配置")
	}
	endpoint := fmt.Sprintf("%s/%s/%s/%s",
		b.BaseURL, b.DeviceKey, url.PathEscape(title), url.PathEscape(text))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := b.Client.Do(req)
	if err != nil {
		return fmt.Errorf("bark: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("bark: status=%d", resp.StatusCode)
	}
	return nil
}
