package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/logger"
	"society-management-backend/internal/repository"
)

// OrderLine is one requested product and quantity at checkout.
type OrderLine struct {
	ProductID int32
	Quantity  int
}

// OrderReceipt is the outcome of a successful checkout.
type OrderReceipt struct {
	Order            *domain.Order
	RemainingBalance decimal.Decimal
}

type ProductInput struct {
	Name        string
	Category    domain.ProductCategory
	Description string
	Quantity    int
	Price       decimal.Decimal
	Unit        string
	MinStock    *int
}

// ProductPatch carries only the fields to change.
type ProductPatch struct {
	Name        *string
	Category    *domain.ProductCategory
	Description *string
	Quantity    *int
	Price       *decimal.Decimal
	Unit        *string
	MinStock    *int
	IsActive    *bool
}

type storeService struct {
	txManager   repository.TxManager
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	ledger      LedgerService
	email       EmailService
	adminEmail  string
}

func NewStoreService(
	txManager repository.TxManager,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	ledger LedgerService,
	email EmailService,
	adminEmail string,
) StoreService {
	return &storeService{
		txManager:   txManager,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		ledger:      ledger,
		email:       email,
		adminEmail:  adminEmail,
	}
}

func (s *storeService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.productRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// PlaceOrder merges repeated products, locks product rows in ascending id order
// so concurrent checkouts can't deadlock, checks every line's stock, then
// decrements and debits the buyer. Order items keep the requested order.
func (s *storeService) PlaceOrder(ctx context.Context, userID int32, lines []OrderLine) (*OrderReceipt, error) {
	logger.EnterMethod("storeService.PlaceOrder", "userID", userID, "lines", len(lines))

	if len(lines) == 0 {
		return nil, validationError("No items in order")
	}
	quantities := make(map[int32]int, len(lines))
	requested := make([]int32, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, validationError("Quantity must be greater than zero").With("productId", line.ProductID)
		}
		if _, seen := quantities[line.ProductID]; !seen {
			requested = append(requested, line.ProductID)
		}
		quantities[line.ProductID] += line.Quantity
	}
	lockOrder := slices.Clone(requested)
	slices.Sort(lockOrder)

	var receipt *OrderReceipt
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		products := make(map[int32]*domain.Product, len(lockOrder))
		for _, id := range lockOrder {
			product, err := s.productRepo.GetByIDForUpdate(ctx, id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return notFoundError(fmt.Sprintf("Product %d not found", id))
				}
				return fmt.Errorf("failed to load product: %w", err)
			}
			if product.Quantity < quantities[id] {
				return newError(ErrInsufficientStock, fmt.Sprintf("Insufficient stock for %s", product.Name)).
					With("available", product.Quantity).
					With("requested", quantities[id])
			}
			products[id] = product
		}

		for _, id := range lockOrder {
			if err := s.productRepo.DecrementStock(ctx, id, quantities[id]); err != nil {
				return fmt.Errorf("failed to decrement stock: %w", err)
			}
		}

		items := make(domain.OrderItems, 0, len(requested))
		total := decimal.Zero
		for _, id := range requested {
			product, qty := products[id], quantities[id]
			lineTotal := domain.Money(product.Price.Mul(decimal.NewFromInt(int64(qty))))
			items = append(items, domain.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    qty,
				Price:       product.Price,
				Total:       lineTotal,
			})
			total = total.Add(lineTotal)
		}

		user, err := s.userRepo.GetByIDForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFoundError("User not found")
			}
			return fmt.Errorf("failed to load user: %w", err)
		}

		order := &domain.Order{
			UserID:      user.ID,
			Username:    user.Username,
			Items:       items,
			TotalAmount: domain.Money(total),
			Status:      domain.OrderStatusCompleted,
		}

		entry := LedgerEntry{
			Type:        domain.TransactionTypeStorePurchase,
			Description: fmt.Sprintf("Store purchase: %d item(s)", len(items)),
		}
		if err := s.ledger.Debit(ctx, user, order.TotalAmount, entry); err != nil {
			return err
		}

		if err := s.orderRepo.Create(ctx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		receipt = &OrderReceipt{Order: order, RemainingBalance: user.Balance}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("storeService.PlaceOrder", err, "userID", userID)
		return nil, err
	}

	logger.ExitMethod("storeService.PlaceOrder", "orderID", receipt.Order.ID, "total", receipt.Order.TotalAmount.String())
	return receipt, nil
}

func (s *storeService) ListOrders(ctx context.Context, userID int32) ([]domain.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *storeService) AddProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, validationError("Product name is required")
	}
	if !in.Category.Valid() {
		return nil, validationError(fmt.Sprintf("Invalid category: %s", in.Category))
	}
	if in.Quantity < 0 || in.Price.IsNegative() {
		return nil, validationError("Quantity and price cannot be negative")
	}

	product := &domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Category:    in.Category,
		Description: in.Description,
		Quantity:    in.Quantity,
		Price:       domain.Money(in.Price),
		Unit:        in.Unit,
		MinStock:    domain.DefaultMinStock,
		IsActive:    true,
	}
	if product.Unit == "" {
		product.Unit = domain.DefaultProductUnit
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	logger.Info("Product added", "productID", product.ID, "name", product.Name)
	return product, nil
}

func (s *storeService) UpdateProduct(ctx context.Context, id int32, in ProductPatch) (*domain.Product, error) {
	if in.Category != nil && !in.Category.Valid() {
		return nil, validationError(fmt.Sprintf("Invalid category: %s", *in.Category))
	}
	if (in.Quantity != nil && *in.Quantity < 0) || (in.Price != nil && in.Price.IsNegative()) {
		return nil, validationError("Quantity and price cannot be negative")
	}

	var product *domain.Product
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		product, err = s.loadProductForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if in.Name != nil {
			product.Name = *in.Name
		}
		if in.Category != nil {
			product.Category = *in.Category
		}
		if in.Description != nil {
			product.Description = *in.Description
		}
		if in.Quantity != nil {
			product.Quantity = *in.Quantity
		}
		if in.Price != nil {
			product.Price = domain.Money(*in.Price)
		}
		if in.Unit != nil {
			product.Unit = *in.Unit
		}
		if in.MinStock != nil {
			product.MinStock = *in.MinStock
		}
		if in.IsActive != nil {
			product.IsActive = *in.IsActive
		}

		if err := s.productRepo.Update(ctx, product); err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *storeService) DeleteProduct(ctx context.Context, id int32) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError("Product not found")
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (s *storeService) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	c := domain.ProductCategory(strings.ToLower(category))
	if !c.Valid() {
		return nil, validationError(fmt.Sprintf("Invalid category: %s", category))
	}
	products, err := s.productRepo.ListByCategory(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// UpdateStock sets the on-hand quantity and, when price is given, the unit price.
func (s *storeService) UpdateStock(ctx context.Context, id int32, quantity int, price *decimal.Decimal) (*domain.Product, error) {
	if quantity < 0 {
		return nil, validationError("Quantity cannot be negative")
	}
	if price != nil && price.IsNegative() {
		return nil, validationError("Price cannot be negative")
	}

	var product *domain.Product
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		product, err = s.loadProductForUpdate(ctx, id)
		if err != nil {
			return err
		}
		product.Quantity = quantity
		if price != nil && price.IsPositive() {
			product.Price = domain.Money(*price)
		}
		if err := s.productRepo.Update(ctx, product); err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *storeService) ListLowStock(ctx context.Context) ([]domain.Product, error) {
	products, err := s.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list low-stock products: %w", err)
	}
	return products, nil
}

// NotifyLowStock mails the low-stock list to the admin address. Returns the number of
// products reported; zero when nothing is low or no admin address is configured.
func (s *storeService) NotifyLowStock(ctx context.Context) (int, error) {
	if s.adminEmail == "" {
		logger.Debug("No admin email configured, skipping low-stock alert")
		return 0, nil
	}

	products, err := s.ListLowStock(ctx)
	if err != nil {
		return 0, err
	}
	if len(products) == 0 {
		return 0, nil
	}

	if err := s.email.SendLowStockAlert(ctx, s.adminEmail, products); err != nil {
		return 0, fmt.Errorf("failed to send low-stock alert: %w", err)
	}
	return len(products), nil
}

func (s *storeService) loadProductForUpdate(ctx context.Context, id int32) (*domain.Product, error) {
	product, err := s.productRepo.GetByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError("Product not found")
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return product, nil
}
