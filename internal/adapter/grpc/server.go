package grpc

import (
	"context"
	"errors"
	"math"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/inventory-ledger/internal/domain"
	"github.com/simaogato/inventory-ledger/internal/usecase/dashboard"
	"github.com/simaogato/inventory-ledger/internal/usecase/inventory"
)

// Server implements the InventoryLedger gRPC service
type Server struct {
	InventoryService *inventory.InventoryService
	DashboardService *dashboard.DashboardService
}

// NewServer creates a new gRPC server instance
func NewServer(
	inventoryService *inventory.InventoryService,
	dashboardService *dashboard.DashboardService,
) *Server {
	return &Server{
		InventoryService: inventoryService,
		DashboardService: dashboardService,
	}
}

// AddItem handles the AddItem RPC
func (s *Server) AddItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	itemID, err := stringField(req, "item_id")
	if err != nil {
		return nil, err
	}
	storageID, err := stringField(req, "storage_id")
	if err != nil {
		return nil, err
	}
	amount, err := amountField(req)
	if err != nil {
		return nil, err
	}

	result, err := s.InventoryService.AddItem(ctx, inventory.AddItemInput{
		ItemID:    itemID,
		StorageID: storageID,
		Amount:    amount,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return resultToStruct(result)
}

// RemoveItem handles the RemoveItem RPC
// Insufficient stock is a successful call with applied=false
func (s *Server) RemoveItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	itemID, err := stringField(req, "item_id")
	if err != nil {
		return nil, err
	}
	storageID, err := stringField(req, "storage_id")
	if err != nil {
		return nil, err
	}
	amount, err := amountField(req)
	if err != nil {
		return nil, err
	}

	result, err := s.InventoryService.RemoveItem(ctx, inventory.RemoveItemInput{
		ItemID:    itemID,
		StorageID: storageID,
		Amount:    amount,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return resultToStruct(result)
}

// TransferItem handles the TransferItem RPC
func (s *Server) TransferItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	itemID, err := stringField(req, "item_id")
	if err != nil {
		return nil, err
	}
	sourceID, err := stringField(req, "source_storage_id")
	if err != nil {
		return nil, err
	}
	targetID, err := stringField(req, "target_storage_id")
	if err != nil {
		return nil, err
	}
	amount, err := amountField(req)
	if err != nil {
		return nil, err
	}

	result, err := s.InventoryService.TransferItem(ctx, inventory.TransferItemInput{
		ItemID:          itemID,
		SourceStorageID: sourceID,
		TargetStorageID: targetID,
		Amount:          amount,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return resultToStruct(result)
}

// AdjustPrice handles the AdjustPrice RPC
// The price must be a decimal string so it never passes through a float
func (s *Server) AdjustPrice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	itemID, err := stringField(req, "item_id")
	if err != nil {
		return nil, err
	}
	rawPrice, err := stringField(req, "price")
	if err != nil {
		return nil, err
	}

	price, err := domain.NewMoney(rawPrice)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid price format: %v", err)
	}

	result, err := s.InventoryService.AdjustPrice(ctx, inventory.AdjustPriceInput{
		ItemID: itemID,
		Price:  price,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return resultToStruct(result)
}

// Undo handles the Undo RPC
// Empty history is a successful call with applied=false
func (s *Server) Undo(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	st, err := s.InventoryService.Undo(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	fields := statusFields(st)
	if st.Kind != "" {
		fields["kind"] = string(st.Kind)
	}
	return structpb.NewStruct(fields)
}

// GetState handles the GetState RPC
func (s *Server) GetState(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	snapshot, err := s.DashboardService.GetSnapshot(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	items := make([]any, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		items = append(items, map[string]any{
			"id":    item.ID,
			"title": item.Title,
			"price": item.Price.String(),
		})
	}

	storages := make([]any, 0, len(snapshot.Storages))
	for _, storage := range snapshot.Storages {
		storages = append(storages, map[string]any{
			"id":          storage.ID,
			"owner":       storage.Owner,
			"items_count": storage.ItemsCount,
		})
	}

	history := make([]any, 0, len(snapshot.History))
	for _, line := range snapshot.History {
		history = append(history, map[string]any{
			"entry_id":    line.EntryID.String(),
			"kind":        string(line.Kind),
			"description": line.Description,
			"applied":     line.Applied,
		})
	}

	return structpb.NewStruct(map[string]any{
		"items":       items,
		"storages":    storages,
		"total_units": snapshot.TotalUnits,
		"history":     history,
	})
}

func resultToStruct(result *inventory.OperationResult) (*structpb.Struct, error) {
	fields := statusFields(result.Status)
	fields["entry_id"] = result.EntryID.String()
	fields["kind"] = string(result.Kind)
	return structpb.NewStruct(fields)
}

func statusFields(st domain.Status) map[string]any {
	fields := map[string]any{
		"message": st.Message,
		"applied": st.Applied(),
	}
	if st.Err != nil {
		fields["condition"] = st.Err.Error()
	}
	return fields
}

// stringField reads a required string field from the request
func stringField(req *structpb.Struct, name string) (string, error) {
	value, ok := req.GetFields()[name]
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "missing %s", name)
	}

	str, ok := value.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "invalid %s format: expected a string", name)
	}
	if str.StringValue == "" {
		return "", status.Errorf(codes.InvalidArgument, "missing %s", name)
	}
	return str.StringValue, nil
}

// amountField reads the required integral "amount" field
func amountField(req *structpb.Struct) (int, error) {
	value, ok := req.GetFields()["amount"]
	if !ok {
		return 0, status.Error(codes.InvalidArgument, "missing amount")
	}

	num, ok := value.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, status.Error(codes.InvalidArgument, "invalid amount format: expected a number")
	}
	n := num.NumberValue
	if n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
		return 0, status.Errorf(codes.InvalidArgument, "invalid amount format: %v is not a whole number of units", n)
	}
	return int(n), nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	errorMsg := err.Error()

	switch {
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrStorageNotFound):
		return status.Errorf(codes.NotFound, "%s", errorMsg)
	case errors.Is(err, inventory.ErrInvalidAmount), errors.Is(err, domain.ErrMoneyScale):
		return status.Errorf(codes.InvalidArgument, "%s", errorMsg)
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s", errorMsg)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s", errorMsg)
	}

	// Map remaining validation errors to InvalidArgument
	if strings.Contains(errorMsg, "invalid") ||
		strings.Contains(errorMsg, "must") {
		return status.Errorf(codes.InvalidArgument, "%s", errorMsg)
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", errorMsg)
}
