package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"gorm.io/gorm"
)

const (
	opCheck       = "check_availability"
	opPrice       = "price_lookup"
	opDeduct      = "deduct_single"
	opDeductBatch = "deduct_batch"
)

const (
	msgNotStocked      = "Product not found in this store's inventory"
	msgProductMissing  = "Product not found"
	msgInsufficient    = "Insufficient inventory"
	msgBatchNotStocked = "Product with barcode %s not found in this store's inventory"
	msgBatchShortfall  = "Insufficient inventory for barcode %s"
)

// Service exposes the point-of-sale inventory ledger.
type Service interface {
	CheckAvailability(ctx context.Context, storeID int64, barcode string, quantity int) (*AvailabilityResult, error)
	PriceLookup(ctx context.Context, storeID int64, barcode string) (*PriceQuote, error)
	DeductSingle(ctx context.Context, storeID int64, barcode string, quantity int) (*DeductionResult, error)
	DeductBatch(ctx context.Context, storeID int64, items []BatchItem) (*BatchResult, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	metrics  *metrics.LedgerMetrics
	logg     *logger.Logger
}

// NewService constructs the ledger service. Metrics and logger are optional.
func NewService(repo *Repository, dbClient *db.Client, ledgerMetrics *metrics.LedgerMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		metrics:  ledgerMetrics,
		logg:     logg,
	}, nil
}

// CheckAvailability reports the on-hand quantity without changing it.
func (s *service) CheckAvailability(ctx context.Context, storeID int64, barcode string, quantity int) (result *AvailabilityResult, err error) {
	defer s.observe(opCheck, time.Now(), &err)
	ctx = s.withOperation(ctx, opCheck)

	barcode = strings.TrimSpace(barcode)
	if err := validateLookup(storeID, barcode); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, invalidField("quantity", "must be zero or greater")
	}

	level, err := s.repo.FindStockLevel(ctx, storeID, barcode)
	if err != nil {
		return nil, notStockedOr(err, msgNotStocked, "load stock level")
	}

	return &AvailabilityResult{
		StoreID:           storeID,
		Barcode:           barcode,
		QuantityRequested: quantity,
		QuantityAvailable: level.Quantity,
		Available:         level.Quantity >= quantity,
	}, nil
}

// PriceLookup prices one unit using the best active sale for the product.
func (s *service) PriceLookup(ctx context.Context, storeID int64, barcode string) (quote *PriceQuote, err error) {
	defer s.observe(opPrice, time.Now(), &err)
	ctx = s.withOperation(ctx, opPrice)

	barcode = strings.TrimSpace(barcode)
	if err := validateLookup(storeID, barcode); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindStockLevel(ctx, storeID, barcode); err != nil {
		return nil, notStockedOr(err, msgNotStocked, "load stock level")
	}

	product, err := s.repo.FindProductByBarcode(ctx, barcode)
	if err != nil {
		return nil, notStockedOr(err, msgProductMissing, "load product")
	}

	discount, err := s.repo.MaxActiveDiscount(ctx, product.ID, product.ProductLine)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load active discount")
	}

	return &PriceQuote{
		StoreID:            storeID,
		Barcode:            barcode,
		Name:               product.Name,
		OriginalPrice:      product.Price,
		DiscountPercentage: discount,
		FinalPrice:         ApplyDiscount(product.Price, discount),
	}, nil
}

// DeductSingle removes stock for one item with a single conditional update.
func (s *service) DeductSingle(ctx context.Context, storeID int64, barcode string, quantity int) (result *DeductionResult, err error) {
	defer s.observe(opDeduct, time.Now(), &err)
	ctx = s.withOperation(ctx, opDeduct)

	barcode = strings.TrimSpace(barcode)
	if err := validateLookup(storeID, barcode); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, invalidField("quantity", "must be greater than zero")
	}

	remaining, ok, err := s.repo.DecrementIfAvailable(ctx, storeID, barcode, quantity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deduct inventory")
	}
	if !ok {
		return nil, s.explainShortfall(ctx, storeID, BatchItem{Barcode: barcode, Quantity: quantity}, false)
	}

	s.metrics.AddUnits(opDeduct, quantity)
	return &DeductionResult{
		StoreID:           storeID,
		Barcode:           barcode,
		QuantityDeducted:  quantity,
		RemainingQuantity: remaining,
	}, nil
}

// lineFailure aborts the batch transaction at the first item that cannot be filled.
type lineFailure struct {
	index int
	item  BatchItem
}

func (f *lineFailure) Error() string {
	return fmt.Sprintf("batch item %d (%s) could not be deducted", f.index, f.item.Barcode)
}

// DeductBatch removes stock for every item or for none of them.
func (s *service) DeductBatch(ctx context.Context, storeID int64, items []BatchItem) (result *BatchResult, err error) {
	defer s.observe(opDeductBatch, time.Now(), &err)
	ctx = s.withOperation(ctx, opDeductBatch)

	normalized, err := validateBatch(storeID, items)
	if err != nil {
		return nil, err
	}

	deducted := make([]DeductedItem, 0, len(normalized))
	txErr := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for i, item := range normalized {
			remaining, ok, err := repo.DecrementIfAvailable(ctx, storeID, item.Barcode, item.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deduct batch item")
			}
			if !ok {
				return &lineFailure{index: i, item: item}
			}
			deducted = append(deducted, DeductedItem{
				Barcode:           item.Barcode,
				QuantityDeducted:  item.Quantity,
				RemainingQuantity: remaining,
			})
		}
		return nil
	})

	var failure *lineFailure
	if errors.As(txErr, &failure) {
		if s.logg != nil {
			logCtx := s.logg.WithStoreID(ctx, storeID)
			logCtx = s.logg.WithFields(logCtx, map[string]any{
				"barcode":    failure.item.Barcode,
				"item_index": failure.index,
				"item_count": len(normalized),
			})
			s.logg.Warn(logCtx, "batch deduction rolled back")
		}
		return nil, s.explainShortfall(ctx, storeID, failure.item, true)
	}
	if txErr != nil {
		if pkgerrors.As(txErr) != nil {
			return nil, txErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "commit batch deduction")
	}

	total := 0
	for _, item := range deducted {
		total += item.QuantityDeducted
	}
	s.metrics.AddUnits(opDeductBatch, total)

	return &BatchResult{StoreID: storeID, ItemsDeducted: deducted}, nil
}

// explainShortfall tells a missing product apart from low stock after a
// conditional update matched nothing. The read is not atomic with the update,
// so it only shapes the error.
func (s *service) explainShortfall(ctx context.Context, storeID int64, item BatchItem, batch bool) error {
	level, err := s.repo.FindStockLevel(ctx, storeID, item.Barcode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		msg := msgNotStocked
		if batch {
			msg = fmt.Sprintf(msgBatchNotStocked, item.Barcode)
		}
		return pkgerrors.New(pkgerrors.CodeNotFound, msg)
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load stock level")
	}

	msg := msgInsufficient
	if batch {
		msg = fmt.Sprintf(msgBatchShortfall, item.Barcode)
	}
	return pkgerrors.New(pkgerrors.CodeInsufficientInventory, msg).WithDetails(map[string]any{
		"barcode":           item.Barcode,
		"quantityAvailable": level.Quantity,
		"quantityRequested": item.Quantity,
	})
}

func (s *service) withOperation(ctx context.Context, op string) context.Context {
	if s.logg == nil {
		return ctx
	}
	return s.logg.WithOperation(ctx, op)
}

func (s *service) observe(op string, start time.Time, errp *error) {
	s.metrics.Observe(op, outcomeFor(*errp), time.Since(start))
}

func outcomeFor(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	switch typed := pkgerrors.As(err); {
	case typed == nil:
		return metrics.OutcomeError
	case typed.Code() == pkgerrors.CodeValidation:
		return metrics.OutcomeInvalid
	case typed.Code() == pkgerrors.CodeNotFound:
		return metrics.OutcomeNotFound
	case typed.Code() == pkgerrors.CodeInsufficientInventory:
		return metrics.OutcomeInsufficient
	default:
		return metrics.OutcomeError
	}
}

func notStockedOr(err error, notFoundMsg, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMsg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, op)
}
