package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/tair/warehouse-ledger/internal/inbound/usecase/command"
	"github.com/tair/warehouse-ledger/kafka"
	"github.com/tair/warehouse-ledger/pkg/apperror"
	"github.com/tair/warehouse-ledger/pkg/logger"
)

// InboundHandler handles HTTP requests for goods receipts
type InboundHandler struct {
	processHandler *command.ProcessInboundHandler
	publisher      *kafka.Publisher
	validate       *validator.Validate

	receiptCounter *prometheus.CounterVec
	receiptLatency prometheus.Histogram
}

// NewInboundHandler creates a new inbound handler. The publisher may be nil
// when event publishing is disabled.
func NewInboundHandler(processHandler *command.ProcessInboundHandler, publisher *kafka.Publisher) *InboundHandler {
	receiptCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warehouse_ledger_goods_receipts_total",
			Help: "Total number of goods receipt requests by outcome",
		},
		[]string{"status"},
	)

	receiptLatency := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "warehouse_ledger_goods_receipt_duration_seconds",
			Help:    "Duration of goods receipt processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	prometheus.MustRegister(receiptCounter)
	prometheus.MustRegister(receiptLatency)

	return &InboundHandler{
		processHandler: processHandler,
		publisher:      publisher,
		validate:       validator.New(),
		receiptCounter: receiptCounter,
		receiptLatency: receiptLatency,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type newProductRequest struct {
	SKU         string `json:"sku" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type inboundRequest struct {
	ProductID  uint               `json:"product_id"`
	NewProduct *newProductRequest `json:"new_product"`

	LotNumber          string          `json:"lot_number" validate:"required"`
	ExpiryDate         string          `json:"expiry_date" validate:"required"`
	RegistrationNumber string          `json:"registration_number"`
	ReceivedQuantity   int             `json:"received_quantity" validate:"gt=0"`
	ReceiptDocument    string          `json:"receipt_document" validate:"required"`
	ReceiptPIC         string          `json:"receipt_pic"`
	Length             decimal.Decimal `json:"length"`
	Width              decimal.Decimal `json:"width"`
	Height             decimal.Decimal `json:"height"`
	Weight             decimal.Decimal `json:"weight"`

	AllocationQuantity  int  `json:"allocation_quantity" validate:"gt=0"`
	ActivateImmediately bool `json:"activate_immediately"`

	RackID            uint   `json:"rack_id" validate:"required"`
	PlacementQuantity int    `json:"placement_quantity" validate:"gt=0"`
	PlacedBy          string `json:"placed_by" validate:"required"`
}

// ProcessInbound handles POST /api/inbound
func (h *InboundHandler) ProcessInbound(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "error"
	defer func() {
		h.receiptLatency.Observe(time.Since(start).Seconds())
		h.receiptCounter.WithLabelValues(status).Inc()
	}()

	var req inboundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		status = strconv.Itoa(http.StatusBadRequest)
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		status = strconv.Itoa(http.StatusBadRequest)
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		status = strconv.Itoa(http.StatusBadRequest)
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "expiry_date must be YYYY-MM-DD",
		})
		return
	}

	cmd := command.ProcessInboundCommand{
		ProductID: req.ProductID,
		Batch: command.BatchData{
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
		},
		AllocationQuantity:  req.AllocationQuantity,
		ActivateImmediately: req.ActivateImmediately,
		RackID:              req.RackID,
		PlacementQuantity:   req.PlacementQuantity,
		PlacedBy:            req.PlacedBy,
	}
	if req.NewProduct != nil {
		cmd.NewProduct = &command.NewProductData{
			SKU:         req.NewProduct.SKU,
			Name:        req.NewProduct.Name,
			Description: req.NewProduct.Description,
		}
	}

	result, err := h.processHandler.Handle(r.Context(), cmd)
	if err != nil {
		code := apperror.HTTPStatus(err)
		status = strconv.Itoa(code)
		logger.Error(r.Context()).Err(err).Msg("Failed to process goods receipt")
		respondJSON(w, code, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	status = strconv.Itoa(http.StatusCreated)
	h.publishGoodsReceived(r, result)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Goods receipt processed successfully",
		Data:    result,
	})
}

// publishGoodsReceived emits the receipt event after the commit. Publish
// failures are logged and never fail the request.
func (h *InboundHandler) publishGoodsReceived(r *http.Request, result *command.InboundResult) {
	if h.publisher == nil {
		return
	}
	err := h.publisher.PublishGoodsReceived(r.Context(), kafka.GoodsReceivedEvent{
		ProductID:    result.Product.ID,
		BatchID:      result.Batch.ID,
		AllocationID: result.Allocation.ID,
		LotNumber:    result.Batch.LotNumber,
		Quantity:     result.Batch.ReceivedQuantity,
		RackID:       result.Placement.RackID,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to publish goods received event")
	}
}

// RegisterRoutes registers all inbound routes
func (h *InboundHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/inbound", h.ProcessInbound).Methods("POST")
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
