package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/buildmatpro/proforma-service/config"
	"github.com/buildmatpro/proforma-service/internal/domain"
	"github.com/buildmatpro/proforma-service/internal/dto"
	imagegateway "github.com/buildmatpro/proforma-service/internal/infrastructure/image-gateway"
	"github.com/buildmatpro/proforma-service/internal/repository"
	"github.com/buildmatpro/proforma-service/pkg/errs"
	"github.com/buildmatpro/proforma-service/pkg/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type invoiceSession struct {
	invoice      *domain.Invoice
	pendingEdits map[string]struct{}
	lastActive   time.Time
}

type ProformaServiceImpl struct {
	repository repository.ProductRepository
	gateway    imagegateway.ImageEditGateway
	config     *config.Config
	taxRate    decimal.Decimal
	sessionTTL time.Duration

	mu       sync.Mutex
	sessions map[string]*invoiceSession
}

func CreateProformaService(repository repository.ProductRepository, gateway imagegateway.ImageEditGateway, config *config.Config) ProformaService {
	taxRate, err := decimal.NewFromString(config.TaxRatePercent)
	if err != nil {
		log.Error().Err(err).Str("component", "CreateProformaService").Msg("invalid TAX_RATE_PERCENT, falling back to 15")
		taxRate = decimal.NewFromInt(15)
	}

	ttlMinutes, err := strconv.Atoi(config.SessionTTLMinutes)
	if err != nil || ttlMinutes <= 0 {
		ttlMinutes = 60
	}

	return &ProformaServiceImpl{
		repository: repository,
		gateway:    gateway,
		config:     config,
		taxRate:    taxRate.Div(decimal.NewFromInt(100)),
		sessionTTL: time.Duration(ttlMinutes) * time.Minute,
		sessions:   map[string]*invoiceSession{},
	}
}

func (s *ProformaServiceImpl) GetProducts(ctx context.Context) (data []dto.ProductResponse, err error) {
	products, err := s.repository.GetProducts(ctx)
	if err != nil {
		return
	}

	for _, product := range products {
		data = append(data, dto.ProductResponse{
			ID:           product.ID,
			Name:         product.Name,
			Category:     product.Category,
			Manufacturer: product.Manufacturer,
			Price:        product.Price.StringFixed(2),
			Unit:         product.Unit,
			Image:        product.Image,
			Description:  product.Description,
			Features:     product.Features,
		})
	}

	return
}

func (s *ProformaServiceImpl) CreateSession(ctx context.Context) (resp dto.InvoiceResponse, err error) {
	now := time.Now()
	sessionID := uuid.New().String()

	invoice := domain.NewInvoice(domain.CustomerDetails{
		Name:       "John Architect",
		Company:    "Modern Builds Ltd.",
		Email:      "john@modernbuilds.com",
		Phone:      "+1 (555) 123-4567",
		Address:    "123 Construction Ave, Builder City, BC 90210",
		PINumber:   utils.GeneratePINumber(now),
		Date:       utils.FormatDate(now),
		ValidUntil: utils.DefaultValidUntil(now),
	})

	s.mu.Lock()
	s.sessions[sessionID] = &invoiceSession{
		invoice:      invoice,
		pendingEdits: map[string]struct{}{},
		lastActive:   now,
	}
	s.mu.Unlock()

	log.Info().Str("component", "CreateSession").Str("session_id", sessionID).Msg("invoice session created")

	return s.buildInvoiceResponse(sessionID, invoice), nil
}

// withSession runs fn with the session's invoice under the store lock, which
// keeps mutations run-to-completion just like the original single-threaded
// event loop.
func (s *ProformaServiceImpl) withSession(sessionID string, fn func(sess *invoiceSession) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return errs.ErrSessionNotFound
	}

	sess.lastActive = time.Now()

	return fn(sess)
}

func (s *ProformaServiceImpl) GetInvoice(ctx context.Context, sessionID string) (resp dto.InvoiceResponse, err error) {
	err = s.withSession(sessionID, func(sess *invoiceSession) error {
		resp = s.buildInvoiceResponse(sessionID, sess.invoice)
		return nil
	})

	return
}

func (s *ProformaServiceImpl) ExportCSV(ctx context.Context, sessionID string) (fileName string, content []byte, err error) {
	err = s.withSession(sessionID, func(sess *invoiceSession) error {
		fileName = fmt.Sprintf("PI_%s.csv", sess.invoice.Customer.PINumber)

		data, buildErr := buildInvoiceCSV(sess.invoice, s.taxRate)
		if buildErr != nil {
			return buildErr
		}
		content = data

		return nil
	})

	return
}

func (s *ProformaServiceImpl) ToggleItem(ctx context.Context, sessionID string, req dto.ToggleItemRequest) (resp dto.InvoiceResponse, err error) {
	product, err := s.repository.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return
	}

	err = s.withSession(sessionID, func(sess *invoiceSession) error {
		added := sess.invoice.ToggleItem(product)
		log.Info().
			Str("component", "ToggleItem").
			Str("product_id", product.ID).
			Bool("added", added).
			Msg("line item toggled")

		resp = s.buildInvoiceResponse(sessionID, sess.invoice)
		return nil
	})

	return
}

func (s *ProformaServiceImpl) SetQuantity(ctx context.Context, sessionID string, productID string, req dto.QuantityRequest) (resp dto.InvoiceResponse, err error) {
	err = s.withSession(sessionID, func(sess *invoiceSession) error {
		setErr := sess.invoice.SetQuantity(productID, req.Quantity)
		if setErr == errs.ErrItemNotFound {
			// Stale reference, nothing to update.
			setErr = nil
		}
		if setErr != nil {
			return setErr
		}

		resp = s.buildInvoiceResponse(sessionID, sess.invoice)
		return nil
	})

	return
}

func (s *ProformaServiceImpl) SetItemNotes(ctx context.Context, sessionID string, productID string, req dto.NotesRequest) (resp dto.InvoiceResponse, err error) {
	err = s.withSession(sessionID, func(sess *invoiceSession) error {
		if setErr := sess.invoice.SetItemNotes(productID, req.Notes); setErr != nil && setErr != errs.ErrItemNotFound {
			return setErr
		}

		resp = s.buildInvoiceResponse(sessionID, sess.invoice)
		return nil
	})

	return
}

// SetItemImage commits an edited image onto a line item. A commit aimed at an
// item that was removed while the edit was pending is discarded silently; a
// late result must never resurrect or mutate anything.
func (s *ProformaServiceImpl) SetItemImage(ctx context.Context, sessionID string, productID string, req dto.ItemImageRequest) (resp dto.InvoiceResponse, err error) {
	err = s.withSession(sessionID, func(sess *invoiceSession) error {
		if setErr := sess.invoice.SetItemImage(productID, req.Image); setErr == errs.ErrItemNotFound {
			log.Info().
				Str("component", "SetItemImage").
				Str("product_id", productID).
				Msg("discarding image for a line item that is no longer on the invoice")
		}

		resp = s.buildInvoiceResponse(sessionID, sess.invoice)
		return nil
	})

	return
}

func (s *ProformaServiceImpl) RemoveItem(ctx context.Context, sessionID string, productID string) (resp dto.InvoiceResponse, err error) {
	err = s.withSession(sessionID, func(sess *invoiceSession) error {
		sess.invoice.RemoveItem(productID)

		resp = s.buildInvoiceResponse(sessionID, sess.invoice)
		return nil
	})

	return
}

func (s *ProformaServiceImpl) UpdateCustomer(ctx context.Context, sessionID string, req dto.CustomerRequest) (resp dto.InvoiceResponse, err error) {
	err = s.withSession(sessionID, func(sess *invoiceSession) error {
		sess.invoice.UpdateCustomer(domain.CustomerDetails{
			Name:       req.Name,
			Company:    req.Company,
			Email:      req.Email,
			Phone:      req.Phone,
			Address:    req.Address,
			PINumber:   req.PINumber,
			Date:       req.Date,
			ValidUntil: req.ValidUntil,
		})

		resp = s.buildInvoiceResponse(sessionID, sess.invoice)
		return nil
	})

	return
}

func (s *ProformaServiceImpl) ToggleVisibility(ctx context.Context, sessionID string, flag string) (resp dto.InvoiceResponse, err error) {
	err = s.withSession(sessionID, func(sess *invoiceSession) error {
		if toggleErr := sess.invoice.ToggleVisibility(flag); toggleErr != nil {
			return toggleErr
		}

		resp = s.buildInvoiceResponse(sessionID, sess.invoice)
		return nil
	})

	return
}

// EditItemImage asks the gateway for a candidate image without committing it.
// Only one edit may be outstanding per line item; the candidate is applied
// through SetItemImage once the user accepts it.
func (s *ProformaServiceImpl) EditItemImage(ctx context.Context, sessionID string, productID string, req dto.ImageEditRequest) (resp dto.ImageEditResponse, err error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return resp, errs.ErrClient
	}

	var sourceImage string
	err = s.withSession(sessionID, func(sess *invoiceSession) error {
		item, ok := sess.invoice.FindItem(productID)
		if !ok {
			return errs.ErrItemNotFound
		}

		if _, pending := sess.pendingEdits[productID]; pending {
			return errs.ErrEditInProgress
		}
		sess.pendingEdits[productID] = struct{}{}

		sourceImage = item.DisplayImage()
		return nil
	})
	if err != nil {
		return
	}

	defer func() {
		s.mu.Lock()
		if sess, ok := s.sessions[sessionID]; ok {
			delete(sess.pendingEdits, productID)
		}
		s.mu.Unlock()
	}()

	image, err := s.gateway.EditImage(ctx, sourceImage, req.Prompt)
	if err != nil {
		log.Error().Err(err).Str("component", "EditItemImage").Str("product_id", productID).Msg("")
		return
	}

	return dto.ImageEditResponse{
		ProductID: productID,
		Image:     image,
	}, nil
}

// EvictIdleSessions drops sessions that have been idle past the TTL. Invoice
// state is session-scoped and never persisted, so eviction is plain deletion.
func (s *ProformaServiceImpl) EvictIdleSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.sessionTTL)
	evicted := 0
	for id, sess := range s.sessions {
		if sess.lastActive.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}

	if evicted > 0 {
		log.Info().Str("component", "EvictIdleSessions").Int("evicted", evicted).Msg("idle invoice sessions evicted")
	}
}

func (s *ProformaServiceImpl) buildInvoiceResponse(sessionID string, invoice *domain.Invoice) dto.InvoiceResponse {
	totals := invoice.ComputeTotals(s.taxRate)

	items := make([]dto.LineItemResponse, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		items = append(items, dto.LineItemResponse{
			ID:           item.ID,
			Name:         item.Name,
			Category:     item.Category,
			Manufacturer: item.Manufacturer,
			Quantity:     item.Quantity,
			Unit:         item.Unit,
			Image:        item.Image,
			EditedImage:  item.EditedImage,
			Description:  item.Description,
			Features:     item.Features,
			Notes:        item.Notes,
			UnitPrice:    item.Price.StringFixed(2),
			Total:        item.LineTotal().StringFixed(2),
		})
	}

	return dto.InvoiceResponse{
		SessionID:  sessionID,
		Customer:   invoice.Customer,
		Visibility: invoice.Visibility,
		Items:      items,
		Subtotal:   totals.Subtotal.StringFixed(2),
		TaxRate:    s.taxRate.Mul(decimal.NewFromInt(100)).String(),
		Tax:        totals.Tax.StringFixed(2),
		Total:      totals.Total.StringFixed(2),
	}
}
