package service

import (
	"context"
	"strings"
	"testing"

	"github.com/buildmatpro/proforma-service/config"
	"github.com/buildmatpro/proforma-service/internal/domain"
	"github.com/buildmatpro/proforma-service/internal/dto"
	"github.com/buildmatpro/proforma-service/pkg/errs"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProductRepository struct {
	products []domain.Product
}

func (r *stubProductRepository) GetProducts(ctx context.Context) ([]domain.Product, error) {
	return r.products, nil
}

func (r *stubProductRepository) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	for _, product := range r.products {
		if product.ID == id {
			return product, nil
		}
	}
	return domain.Product{}, errs.ErrProductNotFound
}

type stubImageGateway struct {
	image string
	err   error
	calls int
}

func (g *stubImageGateway) EditImage(ctx context.Context, image string, instruction string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.image, nil
}

func newTestService(gateway *stubImageGateway) ProformaService {
	repo := &stubProductRepository{
		products: []domain.Product{
			{
				ID:           "1",
				Name:         "Premium Porcelain Floor Tile",
				Category:     "Flooring",
				Manufacturer: "Ceramica Deluxe",
				Price:        decimal.RequireFromString("45.00"),
				Unit:         "sqm",
				Image:        "https://example.com/tile.jpg",
			},
			{
				ID:           "3",
				Name:         "Portland Cement Type I",
				Category:     "Cement",
				Manufacturer: "BuildRight Cement",
				Price:        decimal.RequireFromString("12.00"),
				Unit:         "bag (50kg)",
				Image:        "https://example.com/cement.jpg",
			},
		},
	}

	conf := &config.Config{
		TaxRatePercent:    "15",
		SessionTTLMinutes: "60",
	}

	return CreateProformaService(repo, gateway, conf)
}

func createSession(t *testing.T, svc ProformaService) string {
	t.Helper()

	resp, err := svc.CreateSession(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, resp.SessionID)

	return resp.SessionID
}

func TestCreateSessionDefaults(t *testing.T) {
	svc := newTestService(&stubImageGateway{})

	resp, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	assert.Empty(t, resp.Items)
	assert.Equal(t, "0.00", resp.Subtotal)
	assert.Regexp(t, `^PI-\d{4}-\d{4}$`, resp.Customer.PINumber)
	assert.NotEmpty(t, resp.Customer.Date)
	assert.NotEmpty(t, resp.Customer.ValidUntil)
	assert.True(t, resp.Visibility.ShowManufacturer)
	assert.False(t, resp.Visibility.ShowNotes)
}

func TestToggleAndTotalsFlow(t *testing.T) {
	svc := newTestService(&stubImageGateway{})
	sessionID := createSession(t, svc)
	ctx := context.Background()

	resp, err := svc.ToggleItem(ctx, sessionID, dto.ToggleItemRequest{ProductID: "1"})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	resp, err = svc.ToggleItem(ctx, sessionID, dto.ToggleItemRequest{ProductID: "3"})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)

	resp, err = svc.SetQuantity(ctx, sessionID, "1", dto.QuantityRequest{Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, "102.00", resp.Subtotal)
	assert.Equal(t, "15.30", resp.Tax)
	assert.Equal(t, "117.30", resp.Total)
	assert.Equal(t, "90.00", resp.Items[0].Total)
}

func TestSetQuantityInvalidRejected(t *testing.T) {
	svc := newTestService(&stubImageGateway{})
	sessionID := createSession(t, svc)
	ctx := context.Background()

	_, err := svc.ToggleItem(ctx, sessionID, dto.ToggleItemRequest{ProductID: "1"})
	require.NoError(t, err)

	_, err = svc.SetQuantity(ctx, sessionID, "1", dto.QuantityRequest{Quantity: 0})
	assert.ErrorIs(t, err, errs.ErrInvalidQuantity)

	resp, err := svc.GetInvoice(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Items[0].Quantity)
}

func TestRemoveUnknownItemIsNoOp(t *testing.T) {
	svc := newTestService(&stubImageGateway{})
	sessionID := createSession(t, svc)
	ctx := context.Background()

	_, err := svc.ToggleItem(ctx, sessionID, dto.ToggleItemRequest{ProductID: "1"})
	require.NoError(t, err)

	resp, err := svc.RemoveItem(ctx, sessionID, "nope")
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
}

func TestUnknownSession(t *testing.T) {
	svc := newTestService(&stubImageGateway{})

	_, err := svc.GetInvoice(context.Background(), "missing")
	assert.ErrorIs(t, err, errs.ErrSessionNotFound)
}

// A candidate image whose line item was removed while the edit was pending
// must be dropped on commit; the cart stays untouched.
func TestLateImageCommitAfterRemovalIsDiscarded(t *testing.T) {
	svc := newTestService(&stubImageGateway{image: "data:image/jpeg;base64,QUJD"})
	sessionID := createSession(t, svc)
	ctx := context.Background()

	_, err := svc.ToggleItem(ctx, sessionID, dto.ToggleItemRequest{ProductID: "1"})
	require.NoError(t, err)
	_, err = svc.ToggleItem(ctx, sessionID, dto.ToggleItemRequest{ProductID: "3"})
	require.NoError(t, err)

	editResp, err := svc.EditItemImage(ctx, sessionID, "1", dto.ImageEditRequest{Prompt: "place in a modern kitchen"})
	require.NoError(t, err)
	require.NotEmpty(t, editResp.Image)

	_, err = svc.RemoveItem(ctx, sessionID, "1")
	require.NoError(t, err)

	resp, err := svc.SetItemImage(ctx, sessionID, "1", dto.ItemImageRequest{Image: editResp.Image})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "3", resp.Items[0].ID)
	assert.Empty(t, resp.Items[0].EditedImage)
}

func TestEditItemImageDoesNotCommit(t *testing.T) {
	gateway := &stubImageGateway{image: "data:image/jpeg;base64,QUJD"}
	svc := newTestService(gateway)
	sessionID := createSession(t, svc)
	ctx := context.Background()

	_, err := svc.ToggleItem(ctx, sessionID, dto.ToggleItemRequest{ProductID: "1"})
	require.NoError(t, err)

	editResp, err := svc.EditItemImage(ctx, sessionID, "1", dto.ImageEditRequest{Prompt: "dark slate finish"})
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,QUJD", editResp.Image)
	assert.Equal(t, 1, gateway.calls)

	resp, err := svc.GetInvoice(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items[0].EditedImage)

	resp, err = svc.SetItemImage(ctx, sessionID, "1", dto.ItemImageRequest{Image: editResp.Image})
	require.NoError(t, err)
	assert.Equal(t, editResp.Image, resp.Items[0].EditedImage)
}

func TestEditItemImageValidation(t *testing.T) {
	gateway := &stubImageGateway{err: errs.ErrGatewayUnavailable}
	svc := newTestService(gateway)
	sessionID := createSession(t, svc)
	ctx := context.Background()

	_, err := svc.ToggleItem(ctx, sessionID, dto.ToggleItemRequest{ProductID: "1"})
	require.NoError(t, err)

	_, err = svc.EditItemImage(ctx, sessionID, "1", dto.ImageEditRequest{Prompt: "   "})
	assert.ErrorIs(t, err, errs.ErrClient)
	assert.Equal(t, 0, gateway.calls)

	_, err = svc.EditItemImage(ctx, sessionID, "404", dto.ImageEditRequest{Prompt: "brighter"})
	assert.ErrorIs(t, err, errs.ErrItemNotFound)

	_, err = svc.EditItemImage(ctx, sessionID, "1", dto.ImageEditRequest{Prompt: "brighter"})
	assert.ErrorIs(t, err, errs.ErrGatewayUnavailable)

	// failed edit leaves the line item untouched
	resp, err := svc.GetInvoice(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items[0].EditedImage)
}

func TestToggleVisibilityThroughService(t *testing.T) {
	svc := newTestService(&stubImageGateway{})
	sessionID := createSession(t, svc)
	ctx := context.Background()

	resp, err := svc.ToggleVisibility(ctx, sessionID, domain.FlagManufacturer)
	require.NoError(t, err)
	assert.False(t, resp.Visibility.ShowManufacturer)

	_, err = svc.ToggleVisibility(ctx, sessionID, "sparkles")
	assert.ErrorIs(t, err, errs.ErrClient)
}

func TestUpdateCustomerAcceptsAnyStrings(t *testing.T) {
	svc := newTestService(&stubImageGateway{})
	sessionID := createSession(t, svc)
	ctx := context.Background()

	resp, err := svc.UpdateCustomer(ctx, sessionID, dto.CustomerRequest{
		Name:     "",
		Company:  "ACME, \"Builders\"",
		PINumber: "PI-2026-0042",
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Customer.Name)
	assert.Equal(t, "ACME, \"Builders\"", resp.Customer.Company)
	assert.Equal(t, "PI-2026-0042", resp.Customer.PINumber)
}

func TestExportCSVFileName(t *testing.T) {
	svc := newTestService(&stubImageGateway{})
	sessionID := createSession(t, svc)
	ctx := context.Background()

	_, err := svc.UpdateCustomer(ctx, sessionID, dto.CustomerRequest{PINumber: "PI-2026-0042"})
	require.NoError(t, err)

	fileName, content, err := svc.ExportCSV(ctx, sessionID)
	require.NoError(t, err)

	assert.Equal(t, "PI_PI-2026-0042.csv", fileName)
	assert.True(t, strings.HasPrefix(string(content), "ID,Product,Category"))
}

func TestEvictIdleSessions(t *testing.T) {
	svc := newTestService(&stubImageGateway{})
	sessionID := createSession(t, svc)

	impl := svc.(*ProformaServiceImpl)
	impl.sessionTTL = 0

	svc.EvictIdleSessions()

	_, err := svc.GetInvoice(context.Background(), sessionID)
	assert.ErrorIs(t, err, errs.ErrSessionNotFound)
}
