package admin

import (
	"errors"
	"strconv"

	"github.com/skigrip-bot/internal/http/response"
	"github.com/skigrip-bot/internal/models"
	"github.com/skigrip-bot/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Name     string       `json:"name" binding:"required"`
	Quantity int          `json:"quantity"`
	Price    models.Money `json:"price"`
	PhotoID  string       `json:"photo_id"`
}

// UpdateQuantityRequest 更新库存请求
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdatePriceRequest 更新价格请求
type UpdatePriceRequest struct {
	Price models.Money `json:"price"`
}

// UpdatePhotoRequest 更新图片请求
type UpdatePhotoRequest struct {
	PhotoID string `json:"photo_id"`
}

func parseProductID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "商品 ID 无效")
		return 0, false
	}
	return uint(id), true
}

// GetAdminProducts 商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	products := h.ProductService.List()
	response.Success(c, gin.H{"items": products})
}

// CreateProduct 创建商品 (Admin)
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}

	product, err := h.ProductService.Create(service.CreateProductInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
		PhotoID:  req.PhotoID,
	})
	if err != nil {
		if errors.Is(err, service.ErrProductNameRequired) {
			response.BadRequest(c, "商品名称不能为空")
			return
		}
		response.Error(c, response.CodeInternal, "商品创建失败")
		return
	}
	response.SuccessWithMsg(c, "商品已创建", product)
}

// UpdateProductQuantity 更新库存 (Admin)
func (h *Handler) UpdateProductQuantity(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	if err := h.ProductService.UpdateQuantity(id, req.Quantity); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "商品不存在")
			return
		}
		response.Error(c, response.CodeInternal, "商品更新失败")
		return
	}
	response.SuccessWithMsg(c, "库存已更新", nil)
}

// UpdateProductPrice 更新价格 (Admin)
func (h *Handler) UpdateProductPrice(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}
	var req UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	if err := h.ProductService.UpdatePrice(id, req.Price); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "商品不存在")
			return
		}
		response.Error(c, response.CodeInternal, "商品更新失败")
		return
	}
	response.SuccessWithMsg(c, "价格已更新", nil)
}

// UpdateProductPhoto 更新图片 (Admin)
func (h *Handler) UpdateProductPhoto(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}
	var req UpdatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	if err := h.ProductService.UpdatePhoto(id, req.PhotoID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "商品不存在")
			return
		}
		response.Error(c, response.CodeInternal, "商品更新失败")
		return
	}
	response.SuccessWithMsg(c, "图片已更新", nil)
}

// DeleteProduct 删除商品 (Admin)
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			response.NotFound(c, "商品不存在")
		case errors.Is(err, service.ErrProductInUse):
			response.Conflict(c, "商品已被历史订单引用，无法删除")
		default:
			response.Error(c, response.CodeInternal, "商品删除失败")
		}
		return
	}
	response.SuccessWithMsg(c, "商品已删除", nil)
}
