package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	invdomain "github.com/tair/warehouse-ledger/internal/inventory/domain"
	"github.com/tair/warehouse-ledger/internal/reallocation/domain"
	"github.com/tair/warehouse-ledger/internal/reallocation/usecase/command"
	"github.com/tair/warehouse-ledger/kafka"
	"github.com/tair/warehouse-ledger/pkg/apperror"
	"github.com/tair/warehouse-ledger/pkg/logger"
)

// ReallocationHandler handles HTTP requests for tender and consignment
// reallocations
type ReallocationHandler struct {
	tenderHandler      *command.ReallocateTenderHandler
	consignmentHandler *command.ReallocateConsignmentHandler

	contracts    domain.TenderContractRepository
	reservations domain.ContractReservationRepository
	agreements   domain.ConsignmentAgreementRepository
	consignments domain.ConsignmentRepository
	publisher    *kafka.Publisher
	validate     *validator.Validate
}

// NewReallocationHandler creates a new reallocation handler. The publisher
// may be nil when event publishing is disabled.
func NewReallocationHandler(
	uow command.UnitOfWork,
	contracts domain.TenderContractRepository,
	reservations domain.ContractReservationRepository,
	agreements domain.ConsignmentAgreementRepository,
	consignments domain.ConsignmentRepository,
	publisher *kafka.Publisher,
) *ReallocationHandler {
	return &ReallocationHandler{
		tenderHandler:      command.NewReallocateTenderHandler(uow),
		consignmentHandler: command.NewReallocateConsignmentHandler(uow),
		contracts:          contracts,
		reservations:       reservations,
		agreements:         agreements,
		consignments:       consignments,
		publisher:          publisher,
		validate:           validator.New(),
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateContract handles POST /api/tender-contracts
func (h *ReallocationHandler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ContractNumber  string          `json:"contract_number"`
		ContractDate    string          `json:"contract_date"`
		ContractValue   decimal.Decimal `json:"contract_value"`
		StartDate       string          `json:"start_date"`
		EndDate         string          `json:"end_date"`
		TenderReference string          `json:"tender_reference"`
		TenderWinner    string          `json:"tender_winner"`
		CreatedBy       string          `json:"created_by"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	if req.ContractNumber == "" {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "contract_number is required",
		})
		return
	}

	contractDate, err := parseDate(req.ContractDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "contract_date must be YYYY-MM-DD",
		})
		return
	}
	startDate, _ := parseDate(req.StartDate)
	endDate, _ := parseDate(req.EndDate)

	contract := &domain.TenderContract{
		ContractNumber:  req.ContractNumber,
		ContractDate:    contractDate,
		ContractValue:   req.ContractValue,
		StartDate:       startDate,
		EndDate:         endDate,
		TenderReference: req.TenderReference,
		TenderWinner:    req.TenderWinner,
		Status:          "ACTIVE",
		CreatedBy:       req.CreatedBy,
	}

	if err := h.contracts.Create(r.Context(), contract); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create tender contract")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Tender contract created successfully",
		Data:    contract,
	})
}

// GetContract handles GET /api/tender-contracts/{id}
func (h *ReallocationHandler) GetContract(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	contract, err := h.contracts.FindByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: contract})
}

// ListReservations handles GET /api/tender-contracts/{id}/reservations
func (h *ReallocationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	contractID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.contracts.FindByID(r.Context(), contractID); err != nil {
		respondError(w, err)
		return
	}

	reservations, err := h.reservations.FindByContract(r.Context(), contractID)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list reservations")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: reservations})
}

type tenderReallocationRequest struct {
	SourceAllocationID uint `json:"source_allocation_id" validate:"required"`
	TenderContractID   uint `json:"tender_contract_id" validate:"required"`
	Quantity           int  `json:"quantity" validate:"gt=0"`
}

// ReallocateTender handles POST /api/reallocations/tender
func (h *ReallocationHandler) ReallocateTender(w http.ResponseWriter, r *http.Request) {
	var req tenderReallocationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	result, err := h.tenderHandler.Handle(r.Context(), command.ReallocateTenderCommand{
		SourceAllocationID: req.SourceAllocationID,
		TenderContractID:   req.TenderContractID,
		Quantity:           req.Quantity,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to reallocate to tender")
		respondError(w, err)
		return
	}

	h.publishReallocated(r, req.SourceAllocationID, result.Allocation, req.Quantity)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Stock reallocated to tender successfully",
		Data:    result,
	})
}

// CreateAgreement handles POST /api/consignment-agreements
func (h *ReallocationHandler) CreateAgreement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AgreementNumber string          `json:"agreement_number"`
		CustomerID      uint            `json:"customer_id"`
		AgreementDate   string          `json:"agreement_date"`
		StartDate       string          `json:"start_date"`
		EndDate         string          `json:"end_date"`
		CommissionRate  decimal.Decimal `json:"commission_rate"`
		CreatedBy       string          `json:"created_by"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	if req.AgreementNumber == "" || req.CustomerID == 0 {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "agreement_number and customer_id are required",
		})
		return
	}

	agreementDate, err := parseDate(req.AgreementDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "agreement_date must be YYYY-MM-DD",
		})
		return
	}
	startDate, _ := parseDate(req.StartDate)

	agreement := &domain.ConsignmentAgreement{
		AgreementNumber: req.AgreementNumber,
		CustomerID:      req.CustomerID,
		AgreementDate:   agreementDate,
		StartDate:       startDate,
		CommissionRate:  req.CommissionRate,
		Status:          "ACTIVE",
		CreatedBy:       req.CreatedBy,
	}
	if endDate, err := parseDate(req.EndDate); err == nil && req.EndDate != "" {
		agreement.EndDate = &endDate
	}

	if err := h.agreements.Create(r.Context(), agreement); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create consignment agreement")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Consignment agreement created successfully",
		Data:    agreement,
	})
}

type consignmentReallocationRequest struct {
	AgreementID       uint                     `json:"agreement_id" validate:"required"`
	ConsignmentNumber string                   `json:"consignment_number" validate:"required"`
	Lines             []consignmentLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type consignmentLineRequest struct {
	SourceAllocationID uint            `json:"source_allocation_id" validate:"required"`
	Quantity           int             `json:"quantity" validate:"gt=0"`
	SellingPrice       decimal.Decimal `json:"selling_price"`
}

// ReallocateConsignment handles POST /api/reallocations/consignment
func (h *ReallocationHandler) ReallocateConsignment(w http.ResponseWriter, r *http.Request) {
	var req consignmentReallocationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	cmd := command.ReallocateConsignmentCommand{
		AgreementID:       req.AgreementID,
		ConsignmentNumber: req.ConsignmentNumber,
	}
	for _, line := range req.Lines {
		cmd.Lines = append(cmd.Lines, command.ConsignmentLine{
			SourceAllocationID: line.SourceAllocationID,
			Quantity:           line.Quantity,
			SellingPrice:       line.SellingPrice,
		})
	}

	consignment, err := h.consignmentHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to reallocate to consignment")
		respondError(w, err)
		return
	}

	for i, item := range consignment.Items {
		h.publishReallocated(r, cmd.Lines[i].SourceAllocationID, &invdomain.Allocation{
			ID:               item.AllocationID,
			AllocationTypeID: invdomain.TypeConsignment,
		}, item.QuantityShipped)
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Stock reallocated to consignment successfully",
		Data:    consignment,
	})
}

// GetConsignment handles GET /api/consignments/{id}
func (h *ReallocationHandler) GetConsignment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	consignment, err := h.consignments.FindByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: consignment})
}

// publishReallocated emits the reallocation event after the commit. Publish
// failures are logged and never fail the request.
func (h *ReallocationHandler) publishReallocated(r *http.Request, sourceID uint, target *invdomain.Allocation, quantity int) {
	if h.publisher == nil {
		return
	}

	purpose := "TENDER"
	if target.AllocationTypeID == invdomain.TypeConsignment {
		purpose = "CONSIGNMENT"
	}
	err := h.publisher.PublishStockReallocated(r.Context(), kafka.StockReallocatedEvent{
		SourceAllocationID: sourceID,
		TargetAllocationID: target.ID,
		TargetPurpose:      purpose,
		Quantity:           quantity,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to publish stock reallocated event")
	}
}

// RegisterRoutes registers all reallocation routes
func (h *ReallocationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/tender-contracts", h.CreateContract).Methods("POST")
	router.HandleFunc("/api/tender-contracts/{id}", h.GetContract).Methods("GET")
	router.HandleFunc("/api/tender-contracts/{id}/reservations", h.ListReservations).Methods("GET")
	router.HandleFunc("/api/consignment-agreements", h.CreateAgreement).Methods("POST")
	router.HandleFunc("/api/consignments/{id}", h.GetConsignment).Methods("GET")
	router.HandleFunc("/api/reallocations/tender", h.ReallocateTender).Methods("POST")
	router.HandleFunc("/api/reallocations/consignment", h.ReallocateConsignment).Methods("POST")
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
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
