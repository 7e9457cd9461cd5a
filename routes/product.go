package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/anquisbarr/fractal-prueba-tecnica/controllers/product"
)

func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB) {
	products := api.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.POST("", productcontroller.CreateProduct(db))
		products.PUT("/:id", productcontroller.UpdateProduct(db))
		products.DELETE("/:id", productcontroller.DeleteProduct(db))
	}
}
