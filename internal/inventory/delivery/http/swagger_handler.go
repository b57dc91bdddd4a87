package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for the warehouse ledger
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// CreateBatch godoc
// @Summary Register a goods receipt batch
// @Description Create a new batch for a product from a receipt document
// @Tags Batches
// @Accept json
// @Produce json
// @Param request body object{product_id=int,lot_number=string,expiry_date=string,received_quantity=int,receipt_document=string} true "Batch data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/batches [post]
func (h *InventoryHandler) CreateBatchDoc() {}

// GetBatch godoc
// @Summary Get batch by ID
// @Tags Batches
// @Produce json
// @Param id path int true "Batch ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/batches/{id} [get]
func (h *InventoryHandler) GetBatchDoc() {}

// CreateAllocation godoc
// @Summary Claim batch quantity for a purpose
// @Tags Allocations
// @Accept json
// @Produce json
// @Param request body object{batch_id=int,allocation_type_id=int,quantity=int,initial_status=string} true "Allocation data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/allocations [post]
func (h *InventoryHandler) CreateAllocationDoc() {}

// GetAllocation godoc
// @Summary Get allocation with derived availability
// @Tags Allocations
// @Produce json
// @Param id path int true "Allocation ID"
// @Success 200 {object} object{success=bool,data=object{available_quantity=int}}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/allocations/{id} [get]
func (h *InventoryHandler) GetAllocationDoc() {}

// ApproveAllocation godoc
// @Summary Release an allocation from quarantine
// @Tags Allocations
// @Produce json
// @Param id path int true "Allocation ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/allocations/{id}/approve [post]
func (h *InventoryHandler) ApproveAllocationDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *InventoryHandler) HealthCheckDoc() {}
