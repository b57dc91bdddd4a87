package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/warehouse-ledger/internal/warehouse/domain"
	"github.com/tair/warehouse-ledger/internal/warehouse/usecase/command"
	"github.com/tair/warehouse-ledger/internal/warehouse/usecase/query"
	"github.com/tair/warehouse-ledger/kafka"
	"github.com/tair/warehouse-ledger/pkg/apperror"
	"github.com/tair/warehouse-ledger/pkg/logger"
)

// WarehouseHandler handles HTTP requests for warehouses, racks and
// placements
type WarehouseHandler struct {
	placeHandler  *command.PlaceStockHandler
	removeHandler *command.RemoveStockHandler

	getRackHandler *query.GetRackHandler

	warehouses domain.WarehouseRepository
	racks      domain.RackRepository
	publisher  *kafka.Publisher
}

// NewWarehouseHandler creates a new warehouse handler. The publisher may be
// nil when event publishing is disabled.
func NewWarehouseHandler(
	warehouses domain.WarehouseRepository,
	racks domain.RackRepository,
	placements domain.PlacementRepository,
	uow command.UnitOfWork,
	publisher *kafka.Publisher,
) *WarehouseHandler {
	return &WarehouseHandler{
		placeHandler:   command.NewPlaceStockHandler(uow),
		removeHandler:  command.NewRemoveStockHandler(uow),
		getRackHandler: query.NewGetRackHandler(racks, placements),
		warehouses:     warehouses,
		racks:          racks,
		publisher:      publisher,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateWarehouse handles POST /api/warehouses
func (h *WarehouseHandler) CreateWarehouse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code    string `json:"code"`
		Name    string `json:"name"`
		Address string `json:"address"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	if req.Code == "" || req.Name == "" {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "code and name are required",
		})
		return
	}

	warehouse := &domain.Warehouse{
		Code:    req.Code,
		Name:    req.Name,
		Address: req.Address,
		Status:  domain.WarehouseActive,
	}

	if err := h.warehouses.Create(r.Context(), warehouse); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create warehouse")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Warehouse created successfully",
		Data:    warehouse,
	})
}

// ListWarehouses handles GET /api/warehouses
func (h *WarehouseHandler) ListWarehouses(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	if limit == 0 {
		limit = 10
	}

	warehouses, err := h.warehouses.FindAll(r.Context(), limit, offset)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list warehouses")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: warehouses})
}

// CreateRack handles POST /api/racks
func (h *WarehouseHandler) CreateRack(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code        string `json:"code"`
		WarehouseID uint   `json:"warehouse_id"`
		Zone        string `json:"zone"`
		Row         string `json:"row"`
		Level       string `json:"level"`
		Capacity    int    `json:"capacity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	if req.Code == "" || req.WarehouseID == 0 {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "code and warehouse_id are required",
		})
		return
	}

	if _, err := h.warehouses.FindByID(r.Context(), req.WarehouseID); err != nil {
		respondError(w, err)
		return
	}

	rack := &domain.Rack{
		Code:        req.Code,
		WarehouseID: req.WarehouseID,
		Zone:        req.Zone,
		Row:         req.Row,
		Level:       req.Level,
		Capacity:    req.Capacity,
		Status:      domain.RackActive,
	}

	if err := h.racks.Create(r.Context(), rack); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create rack")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Rack created successfully",
		Data:    rack,
	})
}

// GetRack handles GET /api/racks/{id}
func (h *WarehouseHandler) GetRack(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	view, err := h.getRackHandler.Handle(r.Context(), query.GetRackQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: view})
}

// ListRacks handles GET /api/warehouses/{id}/racks
func (h *WarehouseHandler) ListRacks(w http.ResponseWriter, r *http.Request) {
	warehouseID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	if limit == 0 {
		limit = 50
	}

	racks, err := h.racks.FindByWarehouse(r.Context(), warehouseID, limit, offset)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list racks")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: racks})
}

// PlaceStock handles POST /api/racks/{id}/placement
func (h *WarehouseHandler) PlaceStock(w http.ResponseWriter, r *http.Request) {
	rackID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		AllocationID uint   `json:"allocation_id"`
		Quantity     int    `json:"quantity"`
		PlacedBy     string `json:"placed_by"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	placement, err := h.placeHandler.Handle(r.Context(), command.PlaceStockCommand{
		RackID:       rackID,
		AllocationID: req.AllocationID,
		Quantity:     req.Quantity,
		PlacedBy:     req.PlacedBy,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to place stock")
		respondError(w, err)
		return
	}

	h.publishStockPlaced(r, placement)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Stock placed successfully",
		Data:    placement,
	})
}

// RemoveStock handles DELETE /api/racks/{id}/placement
func (h *WarehouseHandler) RemoveStock(w http.ResponseWriter, r *http.Request) {
	rackID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	removed, err := h.removeHandler.Handle(r.Context(), command.RemoveStockCommand{RackID: rackID})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to remove stock")
		respondError(w, err)
		return
	}

	h.publishStockRemoved(r, removed)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock removed successfully",
		Data:    removed,
	})
}

// publishStockPlaced emits the placement event after the commit. Publish
// failures are logged and never fail the request.
func (h *WarehouseHandler) publishStockPlaced(r *http.Request, placement *domain.StockPlacement) {
	if h.publisher == nil {
		return
	}
	err := h.publisher.PublishStockPlaced(r.Context(), kafka.StockPlacedEvent{
		RackID:       placement.RackID,
		AllocationID: placement.AllocationID,
		Quantity:     placement.Quantity,
		PlacedBy:     placement.PlacedBy,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to publish stock placed event")
	}
}

func (h *WarehouseHandler) publishStockRemoved(r *http.Request, placement *domain.StockPlacement) {
	if h.publisher == nil {
		return
	}
	err := h.publisher.PublishStockRemoved(r.Context(), kafka.StockRemovedEvent{
		RackID:       placement.RackID,
		AllocationID: placement.AllocationID,
		Quantity:     placement.Quantity,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to publish stock removed event")
	}
}

// RegisterRoutes registers all warehouse routes
func (h *WarehouseHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/warehouses", h.ListWarehouses).Methods("GET")
	router.HandleFunc("/api/warehouses", h.CreateWarehouse).Methods("POST")
	router.HandleFunc("/api/warehouses/{id}/racks", h.ListRacks).Methods("GET")
	router.HandleFunc("/api/racks", h.CreateRack).Methods("POST")
	router.HandleFunc("/api/racks/{id}", h.GetRack).Methods("GET")
	router.HandleFunc("/api/racks/{id}/placement", h.PlaceStock).Methods("POST")
	router.HandleFunc("/api/racks/{id}/placement", h.RemoveStock).Methods("DELETE")
}

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

func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, apperror.HTTPStatus(err), Response{
		Success: false,
		Error:   err.Error(),
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
