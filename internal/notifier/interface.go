package notifier

import "context"

// TextNotifier defines a minimal push notification interface.
// It is intentionally small so the monitor can depend on it without importing
// concrete providers (PushPlus, ServerChan, Bark).
type TextNotifier interface {
	SendText(ctx context.Context, title, text string) error
}

// ChangeNotifier delivers one rendered change summary. Each provider picks its
// own body format: PushPlus 走 HTML 模板，ServerChan/Bark 走纯文本。
type ChangeNotifier interface {
	SendChanges(ctx context.Context, title string, msg ChangeMessage) error
}
