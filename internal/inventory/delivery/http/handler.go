package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/warehouse-ledger/internal/inventory/domain"
	"github.com/tair/warehouse-ledger/internal/inventory/usecase/command"
	"github.com/tair/warehouse-ledger/internal/inventory/usecase/query"
	"github.com/tair/warehouse-ledger/pkg/apperror"
	"github.com/tair/warehouse-ledger/pkg/logger"
)

// InventoryHandler handles HTTP requests for products, batches and
// allocations
type InventoryHandler struct {
	// Command handlers
	createBatchHandler      *command.CreateBatchHandler
	createAllocationHandler *command.CreateAllocationHandler
	approveHandler          *command.ApproveAllocationHandler
	closeHandler            *command.CloseAllocationHandler

	// Query handlers
	getBatchHandler        *query.GetBatchHandler
	listBatchesHandler     *query.ListBatchesHandler
	getAllocationHandler   *query.GetAllocationHandler
	listAllocationsHandler *query.ListAllocationsHandler

	products domain.ProductRepository
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(products domain.ProductRepository, batches domain.BatchRepository, allocations domain.AllocationRepository, uow command.UnitOfWork) *InventoryHandler {
	return &InventoryHandler{
		createBatchHandler:      command.NewCreateBatchHandler(batches, products),
		createAllocationHandler: command.NewCreateAllocationHandler(allocations, batches),
		approveHandler:          command.NewApproveAllocationHandler(uow),
		closeHandler:            command.NewCloseAllocationHandler(uow),
		getBatchHandler:         query.NewGetBatchHandler(batches),
		listBatchesHandler:      query.NewListBatchesHandler(batches, products),
		getAllocationHandler:    query.NewGetAllocationHandler(allocations),
		listAllocationsHandler:  query.NewListAllocationsHandler(allocations, batches),
		products:                products,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateProduct handles POST /api/products
func (h *InventoryHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SKU         string `json:"sku"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	if req.SKU == "" || req.Name == "" {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "sku and name are required",
		})
		return
	}

	product := &domain.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.products.Create(r.Context(), product); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create product")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// GetProduct handles GET /api/products/{id}
func (h *InventoryHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	product, err := h.products.FindByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// ListProducts handles GET /api/products
func (h *InventoryHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	if limit == 0 {
		limit = 10
	}

	products, err := h.products.FindAll(r.Context(), limit, offset)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// CreateBatch handles POST /api/batches
func (h *InventoryHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID          uint            `json:"product_id"`
		LotNumber          string          `json:"lot_number"`
		ExpiryDate         string          `json:"expiry_date"`
		RegistrationNumber string          `json:"registration_number"`
		ReceivedQuantity   int             `json:"received_quantity"`
		ReceiptDocument    string          `json:"receipt_document"`
		ReceiptPIC         string          `json:"receipt_pic"`
		Length             decimal.Decimal `json:"length"`
		Width              decimal.Decimal `json:"width"`
		Height             decimal.Decimal `json:"height"`
		Weight             decimal.Decimal `json:"weight"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "expiry_date must be YYYY-MM-DD",
		})
		return
	}

	batch, err := h.createBatchHandler.Handle(r.Context(), command.CreateBatchCommand{
		ProductID:          req.ProductID,
		LotNumber:          req.LotNumber,
		ExpiryDate:         expiryDate,
		RegistrationNumber: req.RegistrationNumber,
		ReceivedQuantity:   req.ReceivedQuantity,
		ReceiptDocument:    req.ReceiptDocument,
		ReceiptPIC:         req.ReceiptPIC,
		Length:             req.Length,
		Width:              req.Width,
		Height:             req.Height,
		Weight:             req.Weight,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create batch")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Batch created successfully",
		Data:    batch,
	})
}

// GetBatch handles GET /api/batches/{id}
func (h *InventoryHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	batch, err := h.getBatchHandler.Handle(r.Context(), query.GetBatchQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: batch})
}

// ListBatches handles GET /api/products/{id}/batches
func (h *InventoryHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	batches, err := h.listBatchesHandler.Handle(r.Context(), query.ListBatchesQuery{
		ProductID: productID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: batches})
}

// CreateAllocation handles POST /api/allocations
func (h *InventoryHandler) CreateAllocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BatchID          uint   `json:"batch_id"`
		AllocationTypeID uint   `json:"allocation_type_id"`
		Quantity         int    `json:"quantity"`
		CustomerID       *uint  `json:"customer_id"`
		InitialStatus    string `json:"initial_status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	allocation, err := h.createAllocationHandler.Handle(r.Context(), command.CreateAllocationCommand{
		BatchID:          req.BatchID,
		AllocationTypeID: req.AllocationTypeID,
		Quantity:         req.Quantity,
		CustomerID:       req.CustomerID,
		InitialStatus:    domain.AllocationStatus(req.InitialStatus),
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create allocation")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Allocation created successfully",
		Data:    allocation,
	})
}

// GetAllocation handles GET /api/allocations/{id}
func (h *InventoryHandler) GetAllocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	view, err := h.getAllocationHandler.Handle(r.Context(), query.GetAllocationQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: view})
}

// ListAllocations handles GET /api/batches/{id}/allocations
func (h *InventoryHandler) ListAllocations(w http.ResponseWriter, r *http.Request) {
	batchID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	views, err := h.listAllocationsHandler.Handle(r.Context(), query.ListAllocationsQuery{BatchID: batchID})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: views})
}

// ApproveAllocation handles POST /api/allocations/{id}/approve
func (h *InventoryHandler) ApproveAllocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	allocation, err := h.approveHandler.Handle(r.Context(), command.ApproveAllocationCommand{AllocationID: id})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to approve allocation")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Allocation approved successfully",
		Data:    allocation,
	})
}

// CloseAllocation handles POST /api/allocations/{id}/close
func (h *InventoryHandler) CloseAllocation(w http.ResponseWriter, r *http.Request) {
	h.finishAllocation(w, r, false)
}

// CancelAllocation handles POST /api/allocations/{id}/cancel
func (h *InventoryHandler) CancelAllocation(w http.ResponseWriter, r *http.Request) {
	h.finishAllocation(w, r, true)
}

func (h *InventoryHandler) finishAllocation(w http.ResponseWriter, r *http.Request, cancel bool) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	allocation, err := h.closeHandler.Handle(r.Context(), command.CloseAllocationCommand{
		AllocationID: id,
		Cancel:       cancel,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to close allocation")
		respondError(w, err)
		return
	}

	message := "Allocation closed successfully"
	if cancel {
		message = "Allocation cancelled successfully"
	}
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    allocation,
	})
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", h.ListProducts).Methods("GET")
	router.HandleFunc("/api/products", h.CreateProduct).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.GetProduct).Methods("GET")
	router.HandleFunc("/api/products/{id}/batches", h.ListBatches).Methods("GET")
	router.HandleFunc("/api/batches", h.CreateBatch).Methods("POST")
	router.HandleFunc("/api/batches/{id}", h.GetBatch).Methods("GET")
	router.HandleFunc("/api/batches/{id}/allocations", h.ListAllocations).Methods("GET")
	router.HandleFunc("/api/allocations", h.CreateAllocation).Methods("POST")
	router.HandleFunc("/api/allocations/{id}", h.GetAllocation).Methods("GET")
	router.HandleFunc("/api/allocations/{id}/approve", h.ApproveAllocation).Methods("POST")
	router.HandleFunc("/api/allocations/{id}/close", h.CloseAllocation).Methods("POST")
	router.HandleFunc("/api/allocations/{id}/cancel", h.CancelAllocation).Methods("POST")
}

// RegisterHealthCheck registers health check endpoint
func (h *InventoryHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Warehouse ledger is healthy",
		})
	}).Methods("GET")
}

// pathID parses the named numeric path variable, writing a 400 response when
// it is missing or malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars[name], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid " + name,
		})
		return 0, false
	}
	return uint(id), true
}

// respondError maps a business error to its HTTP status.
func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, apperror.HTTPStatus(err), Response{
		Success: false,
		Error:   err.Error(),
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
