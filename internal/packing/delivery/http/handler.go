package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/warehouse-ledger/internal/packing/usecase/command"
	"github.com/tair/warehouse-ledger/internal/packing/usecase/query"
	"github.com/tair/warehouse-ledger/pkg/apperror"
	"github.com/tair/warehouse-ledger/pkg/logger"
)

// PackingHandler handles HTTP requests for packing manifests
type PackingHandler struct {
	createHandler *command.CreateManifestHandler
	getHandler    *query.GetManifestHandler
	listHandler   *query.ListManifestsHandler
}

// NewPackingHandler creates a new packing handler
func NewPackingHandler(createHandler *command.CreateManifestHandler, getHandler *query.GetManifestHandler, listHandler *query.ListManifestsHandler) *PackingHandler {
	return &PackingHandler{
		createHandler: createHandler,
		getHandler:    getHandler,
		listHandler:   listHandler,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateManifest handles POST /api/manifests
func (h *PackingHandler) CreateManifest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PackingSlipNumber string `json:"packing_slip_number"`
		ShipToName        string `json:"ship_to_name"`
		ShipToAddress     string `json:"ship_to_address"`
		Boxes             []struct {
			PackedBy string          `json:"packed_by"`
			Weight   decimal.Decimal `json:"weight"`
			Items    []struct {
				ProductName string `json:"product_name"`
				LotNumber   string `json:"lot_number"`
				ExpiryDate  string `json:"expiry_date"`
				Quantity    int    `json:"quantity"`
				Unit        string `json:"unit"`
			} `json:"items"`
		} `json:"boxes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.CreateManifestCommand{
		PackingSlipNumber: req.PackingSlipNumber,
		ShipToName:        req.ShipToName,
		ShipToAddress:     req.ShipToAddress,
	}
	for _, box := range req.Boxes {
		boxData := command.BoxData{
			PackedBy: box.PackedBy,
			Weight:   box.Weight,
		}
		for _, item := range box.Items {
			boxData.Items = append(boxData.Items, command.ItemData{
				ProductName: item.ProductName,
				LotNumber:   item.LotNumber,
				ExpiryDate:  item.ExpiryDate,
				Quantity:    item.Quantity,
				Unit:        item.Unit,
			})
		}
		cmd.Boxes = append(cmd.Boxes, boxData)
	}

	manifest, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create manifest")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Manifest created successfully",
		Data:    manifest,
	})
}

// GetManifest handles GET /api/manifests/{public_id}
func (h *PackingHandler) GetManifest(w http.ResponseWriter, r *http.Request) {
	publicID := mux.Vars(r)["public_id"]

	manifest, err := h.getHandler.Handle(r.Context(), publicID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: manifest})
}

// ListManifests handles GET /api/manifests
func (h *PackingHandler) ListManifests(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	manifests, err := h.listHandler.Handle(r.Context(), limit)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list manifests")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: manifests})
}

// RegisterRoutes registers all packing routes
func (h *PackingHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/manifests", h.ListManifests).Methods("GET")
	router.HandleFunc("/api/manifests", h.CreateManifest).Methods("POST")
	router.HandleFunc("/api/manifests/{public_id}", h.GetManifest).Methods("GET")
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
