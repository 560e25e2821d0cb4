package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// 中文说明：
// PushPlus 推送器（http://www.pushplus.plus/）：库存变化时把 HTML 摘要推到手机。
// 单次尝试，失败只记录：下一个 tick 本身就是重试。

type PushPlus struct {
	Token   string
	BaseURL string // overridable for tests
	Client  *http.Client
}

func NewPushPlus(token string) *PushPlus {
	return &PushPlus{
		Token:   token,
		BaseURL: "http://www.pushplus.plus",
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SendText 发送一条 HTML 模板消息。
func (p *PushPlus) SendText(ctx context.Context, title, text string) error {
	if p.Token == "" {
		return fmt.Errorf("pushplus: token 未配置")
	}
	payload := map[string]any{
		"token":    p.Token,
		"title":    title,
		"content":  text,
		"template": "html",
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("pushplus: %w", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("pushplus: status=%d body=%s", resp.StatusCode, truncate(respBody, 200))
	}
	// PushPlus always answers 200; the real outcome sits in the body code.
	if code := gjson.GetBytes(respBody, "code"); code.Exists() && code.Int() != 200 {
		return fmt.Errorf("pushplus: code=%d msg=%s", code.Int(), gjson.GetBytes(respBody, "msg").String())
	}
	return nil
}

// SendChanges renders the summary as HTML for the pushplus template.
func (p *PushPlus) SendChanges(ctx context.Context, title string, msg ChangeMessage) error {
	return p.SendText(ctx, title, msg.RenderHTML())
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
