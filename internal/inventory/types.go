package inventory

import (
	"fmt"
	"time"
)

// Item 是一个库存条目，以 AssetID 唯一标识。
type Item struct {
	AssetID    string `json:"assetid"`
	ClassID    string `json:"classid"`
	InstanceID string `json:"instanceid"`
	Amount     int64  `json:"amount"`
}

// Description 保存物品的展示信息，按 classid_instanceid 索引。
type Description struct {
	ClassID        string `json:"classid"`
	InstanceID     string `json:"instanceid"`
	Name           string `json:"name,omitempty"`
	MarketHashName string `json:"market_hash_name,omitempty"`
	IconURL        string `json:"icon_url,omitempty"`
}

// Snapshot 是某一时刻抓取的完整库存。写入后不再修改，只被下一份快照整体取代。
type Snapshot struct {
	CapturedAt   time.Time              `json:"captured_at"`
	Items        map[string]Item        `json:"items"`
	Descriptions map[string]Description `json:"descriptions,omitempty"`
}

// NewSnapshot builds an empty snapshot stamped at the given time.
func NewSnapshot(at time.Time) *Snapshot {
	return &Snapshot{
		CapturedAt:   at,
		Items:        make(map[string]Item),
		Descriptions: make(map[string]Description),
	}
}

// DescriptionKey 是描述表的索引键。
func DescriptionKey(classID, instanceID string) string {
	return classID + "_" + instanceID
}

// ItemName resolves the display name for an item, preferring the market hash
// name from the description table. 描述缺失时退回 classid 占位。
func (s *Snapshot) ItemName(it Item) string {
	if s != nil && s.Descriptions != nil {
		if desc, ok := s.Descriptions[DescriptionKey(it.ClassID, it.InstanceID)]; ok {
			if desc.MarketHashName != "" {
				return desc.MarketHashName
			}
			if desc.Name != "" {
				return desc.Name
			}
		}
	}
	return fmt.Sprintf("物品ID: %s", it.ClassID)
}

// Len 返回快照内条目数。
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Items)
}
