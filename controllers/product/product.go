package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/anquisbarr/fractal-prueba-tecnica/apperrors"
	"github.com/anquisbarr/fractal-prueba-tecnica/models"
)

type CreateProductRequest struct {
	Name      string       `json:"name"`
	UnitPrice models.Money `json:"unitPrice"`
	Qty       int          `json:"qty"`
}

type UpdateProductRequest struct {
	UnitPrice *models.Money `json:"unitPrice"`
	Qty       *int          `json:"qty"`
}

func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		logrus.WithError(err).Error("product request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

// GetProducts returns the whole catalog.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Find(&products).Error; err != nil {
			respondError(c, errors.Wrap(err, "list products"))
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// CreateProduct validates and inserts a catalog row. All three fields are
// required and must be non-zero.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		if req.Name == "" {
			respondError(c, apperrors.Validationf("name is required"))
			return
		}
		if !req.UnitPrice.IsPositive() {
			respondError(c, apperrors.Validationf("unitPrice must be greater than zero"))
			return
		}
		if req.Qty <= 0 {
			respondError(c, apperrors.Validationf("qty must be greater than zero"))
			return
		}

		product := models.Product{
			Name:      req.Name,
			UnitPrice: models.NewMoney(req.UnitPrice.Decimal),
			Qty:       req.Qty,
		}
		if err := db.Create(&product).Error; err != nil {
			respondError(c, errors.Wrap(err, "create product"))
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":   "Product created successfully",
			"productId": product.ID,
		})
	}
}

// UpdateProduct applies a partial update: only the fields present in the
// body are changed.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
			return
		}

		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, apperrors.NotFoundf("product %d not found", id))
				return
			}
			respondError(c, errors.Wrap(err, "fetch product"))
			return
		}

		if req.UnitPrice != nil {
			if !req.UnitPrice.IsPositive() {
				respondError(c, apperrors.Validationf("unitPrice must be greater than zero"))
				return
			}
			product.UnitPrice = models.NewMoney(req.UnitPrice.Decimal)
		}
		if req.Qty != nil {
			if *req.Qty < 0 {
				respondError(c, apperrors.Validationf("qty must not be negative"))
				return
			}
			product.Qty = *req.Qty
		}

		if err := db.Save(&product).Error; err != nil {
			respondError(c, errors.Wrap(err, "update product"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
	}
}

// DeleteProduct removes a catalog row. Existing order lines keep their
// product id; line inserts validate the product at write time instead.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
			return
		}

		res := db.Delete(&models.Product{}, id)
		if res.Error != nil {
			respondError(c, errors.Wrap(res.Error, "delete product"))
			return
		}
		if res.RowsAffected == 0 {
			respondError(c, apperrors.NotFoundf("product %d not found", id))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
