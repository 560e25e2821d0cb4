package notifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ServerChan 推送器（https://sct.ftqq.com/），表单提交 title + desp。
type ServerChan struct {
	SendKey string
	BaseURL string // overridable for tests
	Client  *http.Client
}

func NewServerChan(sendKey string) *ServerChan {
	return &ServerChan{
		SendKey: sendKey,
		BaseURL: "https://sctapi.ftqq.com",
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SendChanges renders the summary as plain text (ServerChan 的 desp 支持 Markdown，
// 纯文本同样合法).
func (s *ServerChan) SendChanges(ctx context.Context, title string, msg ChangeMessage) error {
	return s.SendText(ctx, title, msg.RenderText())
}

func (s *ServerChan) SendText(ctx context.Context, title, text string) error {
	if s.SendKey == "" {
		return fmt.Errorf("serverchan: sendkey 未配置")
	}
	form := url.Values{}
	form.Set("title", title)
	form.Set("desp", text)

	endpoint := fmt.Sprintf("%s/%s.send", s.BaseURL, s.SendKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("serverchan: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("serverchan: status=%d", resp.StatusCode)
	}
	return nil
}
