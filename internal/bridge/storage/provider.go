package storage

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/visorhq/visor/host/internal/host"
	"github.com/visorhq/visor/host/internal/shared/types"
)

// Provider implements the storage bridge as pass-throughs to one shared
// store collaborator. Each op is pre-bound into a standalone function
// closing over the collaborator before publication: behavior crosses the
// boundary, the collaborator's identity never does.
type Provider struct {
	list func(context.Context) ([]string, error)
	all  func(context.Context) ([]types.StorageItem, error)
	get  func(context.Context, string) ([]byte, error)
	put  func(context.Context, string, []byte) error
	del  func(context.Context, string) error
}

// NewProvider pre-binds the storage ops over store
func NewProvider(store host.Store) *Provider {
	return &Provider{
		list: store.List,
		all:  store.All,
		get:  store.Get,
		put:  store.Put,
		del:  store.Delete,
	}
}

// Definition returns the published bridge shape
func (p *Provider) Definition() types.Bridge {
	return types.Bridge{
		ID:          "storage",
		Name:        "Storage Bridge",
		Description: "Named item storage",
		Category:    types.CategoryStorage,
		Ops: []types.Op{
			{
				ID:          "storage.list",
				Name:        "List Items",
				Description: "List stored item keys",
				Parameters:  []types.Parameter{},
				Returns:     "array",
			},
			{
				ID:          "storage.all",
				Name:        "Read All Items",
				Description: "Read every stored item",
				Parameters:  []types.Parameter{},
				Returns:     "array",
			},
			{
				ID:          "storage.get",
				Name:        "Get Item",
				Description: "Read one stored item",
				Parameters: []types.Parameter{
					{Name: "key", Type: "string", Description: "Item key", Required: true},
				},
				Returns: "string",
			},
			{
				ID:          "storage.put",
				Name:        "Put Item",
				Description: "Write one stored item",
				Parameters: []types.Parameter{
					{Name: "key", Type: "string", Description: "Item key", Required: true},
					{Name: "value", Type: "string", Description: "Base64 item content", Required: true},
				},
				Returns: "boolean",
			},
			{
				ID:          "storage.delete",
				Name:        "Delete Item",
				Description: "Delete one stored item",
				Parameters: []types.Parameter{
					{Name: "key", Type: "string", Description: "Item key", Required: true},
				},
				Returns: "boolean",
			},
		},
	}
}

// Execute runs a storage op
func (p *Provider) Execute(ctx context.Context, opID string, params map[string]interface{}) (*types.Result, error) {
	switch opID {
	case "storage.list":
		keys, err := p.list(ctx)
		if err != nil {
			return failure(err.Error())
		}
		return success(map[string]interface{}{"keys": keys})
	case "storage.all":
		items, err := p.all(ctx)
		if err != nil {
			return failure(err.Error())
		}
		return success(map[string]interface{}{"items": encodeItems(items)})
	case "storage.get":
		return p.getItem(ctx, params)
	case "storage.put":
		return p.putItem(ctx, params)
	case "storage.delete":
		return p.deleteItem(ctx, params)
	default:
		return failure(fmt.Sprintf("unknown op: %s", opID))
	}
}

func (p *Provider) getItem(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	key, ok := params["key"].(string)
	if !ok || key == "" {
		return failure("key parameter required")
	}
	value, err := p.get(ctx, key)
	if err != nil {
		return failure(err.Error())
	}
	if value == nil {
		return success(map[string]interface{}{"key": key, "value": nil})
	}
	return success(map[string]interface{}{"key": key, "value": base64.StdEncoding.EncodeToString(value)})
}

func (p *Provider) putItem(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	key, ok := params["key"].(string)
	if !ok || key == "" {
		return failure("key parameter required")
	}
	encoded, ok := params["value"].(string)
	if !ok {
		return failure("value parameter required")
	}
	value, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return failure("value must be base64 encoded")
	}
	if err := p.put(ctx, key, value); err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"stored": true, "key": key})
}

func (p *Provider) deleteItem(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	key, ok := params["key"].(string)
	if !ok || key == "" {
		return failure("key parameter required")
	}
	if err := p.del(ctx, key); err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"deleted": true, "key": key})
}

func encodeItems(items []types.StorageItem) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		out = append(out, map[string]interface{}{
			"key":   item.Key,
			"value": base64.StdEncoding.EncodeToString(item.Value),
		})
	}
	return out
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
