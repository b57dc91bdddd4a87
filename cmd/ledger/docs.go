package main

// @title Warehouse Ledger API
// @version 1.0
// @description Inventory allocation and placement ledger with full observability stack (Prometheus, Jaeger)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @host localhost:8080
// @BasePath /

// @tag.name Batches
// @tag.description Batch registry endpoints

// @tag.name Allocations
// @tag.description Allocation ledger endpoints

// @tag.name Warehouses
// @tag.description Warehouse and rack endpoints

// @tag.name Inbound
// @tag.description Goods receipt orchestration endpoints

// @tag.name Reallocations
// @tag.description Tender and consignment reallocation endpoints

// @tag.name Manifests
// @tag.description Packing manifest endpoints

// @tag.name Health
// @tag.description Health check endpoints
