package grpc

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/inventory-ledger/internal/adapter/repository/memory"
	"github.com/simaogato/inventory-ledger/internal/domain"
	"github.com/simaogato/inventory-ledger/internal/usecase/dashboard"
	"github.com/simaogato/inventory-ledger/internal/usecase/inventory"
	"github.com/simaogato/inventory-ledger/internal/usecase/ledger"
	"github.com/simaogato/inventory-ledger/internal/usecase/seeder"
)

const testToken = "test-token"

// startLedger serves the ledger over an in-memory listener and returns an authenticated client context
func startLedger(t *testing.T) (*Client, context.Context) {
	t.Helper()

	ctx := context.Background()
	catalog := memory.NewCatalogRepository()
	err := seeder.NewCatalogSeeder(catalog).Seed(ctx,
		[]*domain.Item{domain.NewItem("101", "iPhone 15")},
		[]*domain.Storage{domain.NewStorage("MSK-01", "Ivan Ivanov"), domain.NewStorage("SPB-02", "Petr Petrov")},
	)
	require.NoError(t, err)

	manager := ledger.NewManager(nil)
	server := NewServer(
		inventory.NewInventoryService(catalog, manager),
		dashboard.NewDashboardService(catalog, manager),
	)

	lis := bufconn.Listen(1 << 20)
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(AuthInterceptor(testToken)))
	RegisterLedgerServiceServer(grpcServer, server)
	go func() {
		_ = grpcServer.Serve(lis)
	}()
	t.Cleanup(grpcServer.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	authCtx := metadata.AppendToOutgoingContext(ctx, "authorization", testToken)
	return NewClient(conn), authCtx
}

func TestServer_EndToEndScenario(t *testing.T) {
	client, ctx := startLedger(t)

	add, err := client.AddItem(ctx, "101", "MSK-01", 50)
	require.NoError(t, err)
	assert.True(t, add.Applied)
	assert.Equal(t, string(domain.KindAddItem), add.Kind)
	assert.NotEmpty(t, add.EntryID)

	price, err := client.AdjustPrice(ctx, "101", "99000.50")
	require.NoError(t, err)
	assert.Equal(t, "Price changed from 0.00 to 99000.50", price.Message)

	transfer, err := client.TransferItem(ctx, "101", "MSK-01", "SPB-02", 10)
	require.NoError(t, err)
	assert.True(t, transfer.Applied)

	state, err := client.GetState(ctx)
	require.NoError(t, err)
	require.Len(t, state.Storages, 2)
	assert.Equal(t, 40, state.Storages[0].ItemsCount)
	assert.Equal(t, 10, state.Storages[1].ItemsCount)
	assert.Equal(t, "99000.50", state.Items[0].Price)
	assert.Equal(t, 3, state.HistoryDepth)

	_, err = client.Undo(ctx)
	require.NoError(t, err)
	undo, err := client.Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(domain.KindAdjustPrice), undo.Kind)

	state, err = client.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, state.Storages[0].ItemsCount)
	assert.Equal(t, 0, state.Storages[1].ItemsCount)
	assert.Equal(t, "0.00", state.Items[0].Price)
	assert.Equal(t, 50, state.TotalUnits)
	assert.Equal(t, 1, state.HistoryDepth)
}

func TestServer_ReportedConditions(t *testing.T) {
	client, ctx := startLedger(t)

	empty, err := client.Undo(ctx)
	require.NoError(t, err)
	assert.False(t, empty.Applied)
	assert.Equal(t, domain.ErrNothingToUndo.Error(), empty.Condition)

	remove, err := client.RemoveItem(ctx, "101", "MSK-01", 1)
	require.NoError(t, err, "insufficient stock is not an RPC error")
	assert.False(t, remove.Applied)
	assert.Equal(t, domain.ErrInsufficientStock.Error(), remove.Condition)

	// The rejected removal is still in history, and undoing it adds the units back
	state, err := client.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, state.HistoryDepth)

	_, err = client.Undo(ctx)
	require.NoError(t, err)
	state, err = client.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Storages[0].ItemsCount)
}

func TestServer_InvalidRequests(t *testing.T) {
	client, ctx := startLedger(t)

	tests := []struct {
		name   string
		method string
		fields map[string]any
		code   codes.Code
	}{
		{name: "missing item", method: MethodAddItem, fields: map[string]any{"storage_id": "MSK-01", "amount": 1}, code: codes.InvalidArgument},
		{name: "fractional amount", method: MethodAddItem, fields: map[string]any{"item_id": "101", "storage_id": "MSK-01", "amount": 1.5}, code: codes.InvalidArgument},
		{name: "amount as string", method: MethodRemoveItem, fields: map[string]any{"item_id": "101", "storage_id": "MSK-01", "amount": "1"}, code: codes.InvalidArgument},
		{name: "negative amount", method: MethodAddItem, fields: map[string]any{"item_id": "101", "storage_id": "MSK-01", "amount": -3}, code: codes.InvalidArgument},
		{name: "unknown storage", method: MethodAddItem, fields: map[string]any{"item_id": "101", "storage_id": "EKB-03", "amount": 1}, code: codes.NotFound},
		{name: "unknown item", method: MethodAdjustPrice, fields: map[string]any{"item_id": "999", "price": "1.00"}, code: codes.NotFound},
		{name: "price as number", method: MethodAdjustPrice, fields: map[string]any{"item_id": "101", "price": 1.5}, code: codes.InvalidArgument},
		{name: "price too precise", method: MethodAdjustPrice, fields: map[string]any{"item_id": "101", "price": "1.001"}, code: codes.InvalidArgument},
		{name: "transfer to itself", method: MethodTransferItem, fields: map[string]any{"item_id": "101", "source_storage_id": "MSK-01", "target_storage_id": "MSK-01", "amount": 1}, code: codes.InvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Invoke(ctx, tt.method, tt.fields)
			assert.Equal(t, tt.code, status.Code(err), "unexpected error: %v", err)
		})
	}

	state, err := client.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, state.HistoryDepth, "rejected requests never reach the ledger")
}

func TestServer_RequiresToken(t *testing.T) {
	client, _ := startLedger(t)

	_, err := client.GetState(context.Background())

	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestMapError(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
	}{
		{err: domain.ErrItemNotFound, code: codes.NotFound},
		{err: errors.Join(errors.New("resolve storage"), domain.ErrStorageNotFound), code: codes.NotFound},
		{err: inventory.ErrInvalidAmount, code: codes.InvalidArgument},
		{err: errors.New("invalid transfer: source and target storage must differ"), code: codes.InvalidArgument},
		{err: context.Canceled, code: codes.Canceled},
		{err: errors.New("disk on fire"), code: codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.code, status.Code(mapError(tt.err)))
		})
	}
	assert.NoError(t, mapError(nil))
}

func TestAmountField(t *testing.T) {
	req, err := structpb.NewStruct(map[string]any{"amount": 42})
	require.NoError(t, err)

	n, err := amountField(req)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	req, err = structpb.NewStruct(map[string]any{"amount": 1e12})
	require.NoError(t, err)
	_, err = amountField(req)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
