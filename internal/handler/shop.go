package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/osse101/BrandishShop/internal/domain"
	"github.com/osse101/BrandishShop/internal/economy"
	"github.com/osse101/BrandishShop/internal/logger"
)

// GoldReader reads a user's balance
type GoldReader interface {
	GetBalance(ctx context.Context, userID string) (int64, error)
}

// InventoryLister lists a user's ownership records
type InventoryLister interface {
	List(ctx context.Context, userID string) ([]domain.InventoryRecord, error)
}

// BuyRequest is the body of POST /api/v1/shop/buy. Cost is accepted from
// older clients but ignored; the price always comes from the catalog.
type BuyRequest struct {
	UserID         string `json:"userId" validate:"required,uuid"`
	EquipmentName  string `json:"equipmentName" validate:"omitempty,max=100"`
	EquipmentIndex string `json:"equipmentIndex" validate:"required,notblank,max=100"`
	Cost           int64  `json:"cost" validate:"gte=0"`
}

// SellRequest is the body of POST /api/v1/shop/sell. With EquipmentIndex
// the catalog price is used, otherwise Cost.
type SellRequest struct {
	UserID         string `json:"userId" validate:"required,uuid"`
	EquipmentName  string `json:"equipmentName" validate:"required,notblank,max=100"`
	EquipmentIndex string `json:"equipmentIndex" validate:"omitempty,max=100"`
	Cost           int64  `json:"cost" validate:"required_without=EquipmentIndex,omitempty,gt=0"`
}

// TradeResponse carries the server-authoritative state after a trade
type TradeResponse struct {
	Message string `json:"message"`
	Gold    int64  `json:"gold"`
	Owned   int    `json:"owned"`
}

// GoldResponse is the body of GET /api/v1/shop/gold
type GoldResponse struct {
	Gold int64 `json:"gold"`
}

// InventoryItem is one ownership record
type InventoryItem struct {
	ItemName string `json:"itemName"`
	Owned    int    `json:"owned"`
}

// InventoryResponse is the body of GET /api/v1/shop/inventory
type InventoryResponse struct {
	Items []InventoryItem `json:"items"`
}

// HandleBuy handles buying one item
// @Summary Buy an item
// @Description Debits the catalog price and adds one item to the user's inventory
// @Tags shop
// @Accept json
// @Produce json
// @Param request body BuyRequest true "Buy request"
// @Success 200 {object} TradeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/shop/buy [post]
func HandleBuy(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BuyRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Buy"); err != nil {
			return
		}

		ctx := logger.WithLogger(r.Context(), logger.FromContext(r.Context()).With(
			"user_id", req.UserID, "item_index", req.EquipmentIndex))

		receipt, err := svc.Buy(ctx, req.UserID, strings.TrimSpace(req.EquipmentIndex), req.EquipmentName)
		if err != nil {
			respondServiceError(w, r.WithContext(ctx), ErrMsgBuyFailed, err)
			return
		}

		respondJSON(w, r, http.StatusOK, TradeResponse{
			Message: fmt.Sprintf(MsgItemBoughtFmt, receipt.ItemName, receipt.Cost),
			Gold:    receipt.Gold,
			Owned:   receipt.Owned,
		})
	}
}

// HandleSell handles selling one item
// @Summary Sell an item
// @Description Removes one item from the user's inventory and credits its price
// @Tags shop
// @Accept json
// @Produce json
// @Param request body SellRequest true "Sell request"
// @Success 200 {object} TradeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/shop/sell [post]
func HandleSell(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SellRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Sell"); err != nil {
			return
		}

		ctx := logger.WithLogger(r.Context(), logger.FromContext(r.Context()).With(
			"user_id", req.UserID, "item_name", req.EquipmentName))

		var (
			receipt *domain.Receipt
			err     error
		)
		if index := strings.TrimSpace(req.EquipmentIndex); index != "" {
			receipt, err = svc.SellIndexed(ctx, req.UserID, index, req.EquipmentName)
		} else {
			receipt, err = svc.Sell(ctx, req.UserID, req.EquipmentName, req.Cost)
		}
		if err != nil {
			respondServiceError(w, r.WithContext(ctx), ErrMsgSellFailed, err)
			return
		}

		respondJSON(w, r, http.StatusOK, TradeResponse{
			Message: fmt.Sprintf(MsgItemSoldFmt, receipt.ItemName, receipt.Cost),
			Gold:    receipt.Gold,
			Owned:   receipt.Owned,
		})
	}
}

// HandleGetGold returns a user's balance
// @Summary Get gold
// @Tags shop
// @Produce json
// @Param userId query string true "User ID"
// @Success 200 {object} GoldResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/shop/gold [get]
func HandleGetGold(ledger GoldReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "userId")
		if !ok {
			return
		}

		gold, err := ledger.GetBalance(r.Context(), userID)
		if err != nil {
			respondReadError(w, r, ErrMsgGetGoldFailed, err)
			return
		}

		respondJSON(w, r, http.StatusOK, GoldResponse{Gold: gold})
	}
}

// HandleGetInventory lists a user's items, including those owned zero times
// @Summary Get inventory
// @Tags shop
// @Produce json
// @Param userId query string true "User ID"
// @Success 200 {object} InventoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/shop/inventory [get]
func HandleGetInventory(inv InventoryLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "userId")
		if !ok {
			return
		}

		records, err := inv.List(r.Context(), userID)
		if err != nil {
			respondReadError(w, r, ErrMsgGetInventoryFailed, err)
			return
		}

		items := make([]InventoryItem, 0, len(records))
		for _, rec := range records {
			items = append(items, InventoryItem{ItemName: rec.ItemName, Owned: rec.Owned})
		}
		respondJSON(w, r, http.StatusOK, InventoryResponse{Items: items})
	}
}
