package steam

import "errors"

var (
	// ErrNotFound 账号不存在或库存资源不可见。
	ErrNotFound = errors.New("steam: inventory not found")
	// ErrPrivateInventory 库存为私密，公开端点无法读取。
	ErrPrivateInventory = errors.New("steam: inventory is private")
	// ErrRateLimited 命中社区端点的限流。
	ErrRateLimited = errors.New("steam: rate limited by community endpoint")
)
