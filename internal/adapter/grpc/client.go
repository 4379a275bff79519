package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// OperationReply is the decoded response of a mutating call or Undo
type OperationReply struct {
	EntryID   string // Empty for Undo
	Kind      string
	Message   string
	Applied   bool
	Condition string // Set when Applied is false
}

// ItemState is one item in a StateReply
type ItemState struct {
	ID    string
	Title string
	Price string
}

// StorageState is one storage in a StateReply
type StorageState struct {
	ID         string
	Owner      string
	ItemsCount int
}

// StateReply is the decoded response of GetState
type StateReply struct {
	Items        []ItemState
	Storages     []StorageState
	TotalUnits   int
	HistoryDepth int
}

// Client calls the ledger service over an existing connection
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient creates a new ledger client
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// AddItem calls the AddItem RPC
func (c *Client) AddItem(ctx context.Context, itemID, storageID string, amount int, opts ...grpc.CallOption) (*OperationReply, error) {
	return c.operation(ctx, MethodAddItem, map[string]any{
		"item_id":    itemID,
		"storage_id": storageID,
		"amount":     amount,
	}, opts...)
}

// RemoveItem calls the RemoveItem RPC
func (c *Client) RemoveItem(ctx context.Context, itemID, storageID string, amount int, opts ...grpc.CallOption) (*OperationReply, error) {
	return c.operation(ctx, MethodRemoveItem, map[string]any{
		"item_id":    itemID,
		"storage_id": storageID,
		"amount":     amount,
	}, opts...)
}

// TransferItem calls the TransferItem RPC
func (c *Client) TransferItem(ctx context.Context, itemID, sourceID, targetID string, amount int, opts ...grpc.CallOption) (*OperationReply, error) {
	return c.operation(ctx, MethodTransferItem, map[string]any{
		"item_id":           itemID,
		"source_storage_id": sourceID,
		"target_storage_id": targetID,
		"amount":            amount,
	}, opts...)
}

// AdjustPrice calls the AdjustPrice RPC; price is a decimal string such as "99000.50"
func (c *Client) AdjustPrice(ctx context.Context, itemID, price string, opts ...grpc.CallOption) (*OperationReply, error) {
	return c.operation(ctx, MethodAdjustPrice, map[string]any{
		"item_id": itemID,
		"price":   price,
	}, opts...)
}

// Undo calls the Undo RPC
func (c *Client) Undo(ctx context.Context, opts ...grpc.CallOption) (*OperationReply, error) {
	return c.operation(ctx, MethodUndo, map[string]any{}, opts...)
}

// GetState calls the GetState RPC
func (c *Client) GetState(ctx context.Context, opts ...grpc.CallOption) (*StateReply, error) {
	out, err := c.Invoke(ctx, MethodGetState, map[string]any{}, opts...)
	if err != nil {
		return nil, err
	}

	fields := out.GetFields()
	reply := &StateReply{
		TotalUnits:   int(fields["total_units"].GetNumberValue()),
		HistoryDepth: len(fields["history"].GetListValue().GetValues()),
	}
	for _, v := range fields["items"].GetListValue().GetValues() {
		item := v.GetStructValue().GetFields()
		reply.Items = append(reply.Items, ItemState{
			ID:    item["id"].GetStringValue(),
			Title: item["title"].GetStringValue(),
			Price: item["price"].GetStringValue(),
		})
	}
	for _, v := range fields["storages"].GetListValue().GetValues() {
		storage := v.GetStructValue().GetFields()
		reply.Storages = append(reply.Storages, StorageState{
			ID:         storage["id"].GetStringValue(),
			Owner:      storage["owner"].GetStringValue(),
			ItemsCount: int(storage["items_count"].GetNumberValue()),
		})
	}
	return reply, nil
}

// Invoke sends fields as a Struct to method and returns the raw response
func (c *Client) Invoke(ctx context.Context, method string, fields map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) operation(ctx context.Context, method string, fields map[string]any, opts ...grpc.CallOption) (*OperationReply, error) {
	out, err := c.Invoke(ctx, method, fields, opts...)
	if err != nil {
		return nil, err
	}

	f := out.GetFields()
	return &OperationReply{
		EntryID:   f["entry_id"].GetStringValue(),
		Kind:      f["kind"].GetStringValue(),
		Message:   f["message"].GetStringValue(),
		Applied:   f["applied"].GetBoolValue(),
		Condition: f["condition"].GetStringValue(),
	}, nil
}
