package notifier

import (
	"fmt"
	"strings"
	"time"

	"steamwatch/internal/inventory"
)

const maxMessageLen = 3800

// ChangeMessage 把一组库存变化渲染成推送正文。
type ChangeMessage struct {
	Changes    []inventory.Change
	DetectedAt time.Time
}

type section struct {
	title string
	lines []string
}

func (m ChangeMessage) sections() []section {
	var added, removed, changed []string
	for _, c := range m.Changes {
		switch c.Kind {
		case inventory.Added:
			added = append(added, fmt.Sprintf("%s x%d", c.Name, c.Amount))
		case inventory.Removed:
			removed = append(removed, fmt.Sprintf("%s x%d", c.Name, c.Amount))
		case inventory.AmountChanged:
			changed = append(changed, fmt.Sprintf("%s: %d → %d", c.Name, c.OldAmount, c.NewAmount))
		}
	}
	var secs []section
	if len(added) > 0 {
		secs = append(secs, section{title: fmt.Sprintf("🎁 新增物品 (%d件)", len(added)), lines: added})
	}
	if len(removed) > 0 {
		secs = append(secs, section{title: fmt.Sprintf("📤 移除物品 (%d件)", len(removed)), lines: removed})
	}
	if len(changed) > 0 {
		secs = append(secs, section{title: fmt.Sprintf("🔄 数量变化 (%d件)", len(changed)), lines: changed})
	}
	return secs
}

// RenderHTML 生成 PushPlus 用的 HTML 正文。
func (m ChangeMessage) RenderHTML() string {
	var b strings.Builder
	if !m.DetectedAt.IsZero() {
		b.WriteString("<p>检测时间: " + m.DetectedAt.Format("2006-01-02 15:04:05") + "</p>")
	}
	for _, sec := range m.sections() {
		b.WriteString("<h3>" + sec.title + ":</h3><ul>")
		for _, line := range sec.lines {
			b.WriteString("<li>" + line + "</li>")
		}
		b.WriteString("</ul>")
	}
	return capLen(b.String())
}

// RenderText 生成 ServerChan/Bark/控制台用的纯文本正文，一行一条变化。
func (m ChangeMessage) RenderText() string {
	var b strings.Builder
	if !m.DetectedAt.IsZero() {
		b.WriteString("检测时间: " + m.DetectedAt.Format("2006-01-02 15:04:05") + "\n")
	}
	for _, sec := range m.sections() {
		b.WriteString(sec.title + ":\n")
		for _, line := range sec.lines {
			b.WriteString("- " + line + "\n")
		}
	}
	return capLen(strings.TrimRight(b.String(), "\n"))
}

func capLen(s string) string {
	if len(s) > maxMessageLen {
		return s[:maxMessageLen] + "..."
	}
	return s
}
