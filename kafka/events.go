package kafka

import "time"

// GoodsReceivedEvent is emitted after a goods receipt commits
type GoodsReceivedEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	ProductID    uint      `json:"product_id"`
	BatchID      uint      `json:"batch_id"`
	AllocationID uint      `json:"allocation_id"`
	LotNumber    string    `json:"lot_number"`
	Quantity     int       `json:"quantity"`
	RackID       uint      `json:"rack_id"`
	Timestamp    time.Time `json:"timestamp"`
}

// StockPlacedEvent is emitted after stock is placed on a rack
type StockPlacedEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	RackID       uint      `json:"rack_id"`
	AllocationID uint      `json:"allocation_id"`
	Quantity     int       `json:"quantity"`
	PlacedBy     string    `json:"placed_by"`
	Timestamp    time.Time `json:"timestamp"`
}

// StockRemovedEvent is emitted after stock is removed from a rack
type StockRemovedEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	RackID       uint      `json:"rack_id"`
	AllocationID uint      `json:"allocation_id"`
	Quantity     int       `json:"quantity"`
	Timestamp    time.Time `json:"timestamp"`
}

// StockReallocatedEvent is emitted after a tender or consignment
// reallocation commits
type StockReallocatedEvent struct {
	EventID            string    `json:"event_id"`
	EventType          string    `json:"event_type"`
	SourceAllocationID uint      `json:"source_allocation_id"`
	TargetAllocationID uint      `json:"target_allocation_id"`
	TargetPurpose      string    `json:"target_purpose"`
	Quantity           int       `json:"quantity"`
	Timestamp          time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeGoodsReceived    = "warehouse.goods_received"
	EventTypeStockPlaced      = "warehouse.stock_placed"
	EventTypeStockRemoved     = "warehouse.stock_removed"
	EventTypeStockReallocated = "warehouse.stock_reallocated"
)

// Kafka topics
const (
	TopicGoodsReceived    = "goods-received"
	TopicStockPlaced      = "stock-placed"
	TopicStockRemoved     = "stock-removed"
	TopicStockReallocated = "stock-reallocated"
)
