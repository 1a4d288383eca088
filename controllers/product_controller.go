package controllers

import (
	"net/http"

	"github.com/DivyaDarni/ShopSmart/apperrors"
	"github.com/DivyaDarni/ShopSmart/services"

	"github.com/gin-gonic/gin"
)

// ProductController serves the public catalog endpoints.
type ProductController struct {
	products *services.ProductService
	cache    *CacheManager
}

func NewProductController(products *services.ProductService, cache *CacheManager) *ProductController {
	return &ProductController{products: products, cache: cache}
}

// GetProducts returns the catalog, filtered and sorted by query params.
func (pc *ProductController) GetProducts(c *gin.Context) {
	params := services.ListProductsParams{
		Category:     c.Query("category"),
		Availability: c.Query("availability"),
		Search:       c.Query("search"),
		Sort:         c.Query("sort"),
	}

	ctx := c.Request.Context()
	if cached, ok := pc.cache.GetProductList(ctx, params); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, appErr := pc.products.List(ctx, params)
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}

	pc.cache.SetProductListAsync(params, products)
	c.JSON(http.StatusOK, products)
}

// GetProductByID returns a single product.
func (pc *ProductController) GetProductByID(c *gin.Context) {
	product, appErr := pc.products.Get(c.Request.Context(), c.Param("id"))
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}
	c.JSON(http.StatusOK, product)
}

// GetCategories returns the distinct categories present in the catalog.
func (pc *ProductController) GetCategories(c *gin.Context) {
	categories, appErr := pc.products.Categories(c.Request.Context())
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}
	c.JSON(http.StatusOK, categories)
}
