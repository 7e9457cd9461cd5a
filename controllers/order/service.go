package orderControllers

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/anquisbarr/fractal-prueba-tecnica/apperrors"
	"github.com/anquisbarr/fractal-prueba-tecnica/models"
)

// -------- Request Structs --------

type ProductData struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderRequest struct {
	OrderNumber  string        `json:"orderNumber"`
	ProductsData []ProductData `json:"productsData"`
}

type UpdateOrderRequest struct {
	ProductsData []ProductData `json:"productsData"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// -------- Helpers --------

// Map string to OrderStatus
func mapOrderStatus(status string) (models.OrderStatus, error) {
	for _, s := range []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusInProgress,
		models.OrderStatusCompleted,
	} {
		if strings.EqualFold(status, string(s)) {
			return s, nil
		}
	}
	return "", apperrors.Validationf("invalid order status %q", status)
}

// Generate unique order number, e.g. 20250908130500-<uuid4>
func generateOrderNumber() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

func validateLines(lines []ProductData) error {
	if len(lines) == 0 {
		return apperrors.Validationf("productsData is required and should not be empty")
	}
	seen := make(map[uint]struct{}, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return apperrors.Validationf("quantity must be at least 1 for product %d", line.ProductID)
		}
		if _, ok := seen[line.ProductID]; ok {
			return apperrors.Validationf("product %d appears more than once", line.ProductID)
		}
		seen[line.ProductID] = struct{}{}
	}
	return nil
}

// consumeStock resolves every line's product, checks and decrements its
// stock, and returns the order lines plus the aggregate totals. Prices are
// taken from the products as stored right now, never from the client.
func consumeStock(tx *gorm.DB, lines []ProductData) ([]models.OrderProduct, models.Money, int, error) {
	var (
		items []models.OrderProduct
		total = decimal.Zero
		count int
	)
	for _, line := range lines {
		var product models.Product
		if err := tx.First(&product, line.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.Money{}, 0, apperrors.NotFoundf("product %d not found", line.ProductID)
			}
			return nil, models.Money{}, 0, errors.Wrap(err, "fetch product")
		}

		if product.Qty < line.Quantity {
			return nil, models.Money{}, 0, apperrors.Validationf("insufficient stock for product %q", product.Name)
		}

		product.Qty -= line.Quantity
		if err := tx.Save(&product).Error; err != nil {
			return nil, models.Money{}, 0, errors.Wrap(err, "update product stock")
		}

		total = total.Add(product.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		count += line.Quantity

		items = append(items, models.OrderProduct{
			ProductID: product.ID,
			Quantity:  line.Quantity,
		})
	}
	return items, models.NewMoney(total), count, nil
}

// restockLines returns the reserved quantities to stock. Lines whose product
// has been deleted in the meantime are skipped silently.
func restockLines(tx *gorm.DB, items []models.OrderProduct) error {
	for _, item := range items {
		if err := tx.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			Update("qty", gorm.Expr("qty + ?", item.Quantity)).Error; err != nil {
			return errors.Wrap(err, "restock product")
		}
	}
	return nil
}

// -------- Core Logic --------

// CreateOrder creates an order with its lines and reserves stock for every
// line, all inside one transaction. Returns the new order's id.
func CreateOrder(db *gorm.DB, req CreateOrderRequest) (uint, error) {
	if err := validateLines(req.ProductsData); err != nil {
		return 0, err
	}

	orderNumber := strings.TrimSpace(req.OrderNumber)
	if orderNumber == "" {
		orderNumber = generateOrderNumber()
	}

	var orderID uint
	err := db.Transaction(func(tx *gorm.DB) error {
		items, finalPrice, count, err := consumeStock(tx, req.ProductsData)
		if err != nil {
			return err
		}

		order := models.Order{
			OrderNumber:      orderNumber,
			Date:             time.Now(),
			NumberOfProducts: count,
			FinalPrice:       finalPrice,
			Status:           models.OrderStatusPending,
			Products:         items,
		}
		if err := tx.Create(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.Validationf("order number %q already exists", orderNumber)
			}
			return errors.Wrap(err, "create order")
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

// UpdateOrder replaces the order's lines: the previous reservation is put
// back on stock, the old lines are removed and the new ones applied exactly
// like CreateOrder does, at current product prices. Status and orderNumber
// are untouched. The whole sequence is one transaction.
func UpdateOrder(db *gorm.DB, orderNumber string, req UpdateOrderRequest) error {
	if err := validateLines(req.ProductsData); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Products").
			Where("order_number = ?", orderNumber).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("order %q not found", orderNumber)
			}
			return errors.Wrap(err, "fetch order")
		}

		if err := restockLines(tx, order.Products); err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).
			Delete(&models.OrderProduct{}).Error; err != nil {
			return errors.Wrap(err, "delete order lines")
		}

		items, finalPrice, count, err := consumeStock(tx, req.ProductsData)
		if err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return errors.Wrap(err, "insert order lines")
		}

		if err := tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Updates(map[string]any{
				"number_of_products": count,
				"final_price":        finalPrice,
			}).Error; err != nil {
			return errors.Wrap(err, "update order totals")
		}
		return nil
	})
}

// DeleteOrder removes the order's lines and header and returns the reserved
// quantities to stock, symmetric with UpdateOrder's restock step.
func DeleteOrder(db *gorm.DB, orderID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Products").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("order %d not found", orderID)
			}
			return errors.Wrap(err, "fetch order")
		}

		if err := restockLines(tx, order.Products); err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).
			Delete(&models.OrderProduct{}).Error; err != nil {
			return errors.Wrap(err, "delete order lines")
		}
		if err := tx.Delete(&models.Order{}, order.ID).Error; err != nil {
			return errors.Wrap(err, "delete order")
		}
		return nil
	})
}

// UpdateOrderStatus mutates the header status only; stock and totals are not
// recomputed.
func UpdateOrderStatus(db *gorm.DB, orderNumber, status string) error {
	newStatus, err := mapOrderStatus(status)
	if err != nil {
		return err
	}

	res := db.Model(&models.Order{}).
		Where("order_number = ?", orderNumber).
		Update("status", newStatus)
	if res.Error != nil {
		return errors.Wrap(res.Error, "update order status")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundf("order %q not found", orderNumber)
	}
	return nil
}
