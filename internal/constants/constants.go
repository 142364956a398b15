package constants

// 会话状态常量（用户侧）
const (
	SessionStateMainMenu       = "main_menu"
	SessionStateViewingCatalog = "viewing_catalog"
	SessionStateViewingCart    = "viewing_cart"
	SessionStateOrderComment   = "order_comment"
	SessionStateAdminAuth      = "admin_auth"
)

// 会话状态常量（管理侧）
const (
	SessionStateAdminPanel             = "admin_panel"
	SessionStateAddingProductName      = "adding_product_name"
	SessionStateAddingProductQuantity  = "adding_product_quantity"
	SessionStateAddingProductPrice     = "adding_product_price"
	SessionStateAddingProductPhoto     = "adding_product_photo"
	SessionStateEditingProductID       = "editing_product_id"
	SessionStateEditingProductQuantity = "editing_product_quantity"
	SessionStateEditingPriceID         = "editing_product_price_id"
	SessionStateEditingProductPrice    = "editing_product_price"
	SessionStateEditingPhotoID         = "editing_photo_id"
	SessionStateEditingPhoto           = "editing_photo"
	SessionStateDeletingProduct        = "deleting_product"
)

// 异步任务常量
const (
	QueueDefault       = "default"
	TaskOrderNotify    = "order:notify"
	LowStockThreshold  = 3 // 库存告警阈值（统计页）
	OrderListPageLimit = 10
)
