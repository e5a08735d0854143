package service

import (
	"context"

	"github.com/buildmatpro/proforma-service/internal/dto"
)

type ProformaService interface {
	GetProducts(ctx context.Context) (data []dto.ProductResponse, err error)

	CreateSession(ctx context.Context) (resp dto.InvoiceResponse, err error)
	GetInvoice(ctx context.Context, sessionID string) (resp dto.InvoiceResponse, err error)
	ExportCSV(ctx context.Context, sessionID string) (fileName string, content []byte, err error)

	ToggleItem(ctx context.Context, sessionID string, req dto.ToggleItemRequest) (resp dto.InvoiceResponse, err error)
	SetQuantity(ctx context.Context, sessionID string, productID string, req dto.QuantityRequest) (resp dto.InvoiceResponse, err error)
	SetItemNotes(ctx context.Context, sessionID string, productID string, req dto.NotesRequest) (resp dto.InvoiceResponse, err error)
	SetItemImage(ctx context.Context, sessionID string, productID string, req dto.ItemImageRequest) (resp dto.InvoiceResponse, err error)
	RemoveItem(ctx context.Context, sessionID string, productID string) (resp dto.InvoiceResponse, err error)
	UpdateCustomer(ctx context.Context, sessionID string, req dto.CustomerRequest) (resp dto.InvoiceResponse, err error)
	ToggleVisibility(ctx context.Context, sessionID string, flag string) (resp dto.InvoiceResponse, err error)

	EditItemImage(ctx context.Context, sessionID string, productID string, req dto.ImageEditRequest) (resp dto.ImageEditResponse, err error)

	EvictIdleSessions()
}
