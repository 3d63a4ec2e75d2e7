package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// 支付状态常量
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// 支付方式常量
const (
	PaymentMethodCard           = "card"
	PaymentMethodCashOnDelivery = "cod"
)

// 折扣类型常量
const (
	PromotionTypeFixed   = "fixed"
	PromotionTypePercent = "percent"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 内置角色常量
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// 卡片 token 前缀
const (
	CardTokenPrefix = "tok_"
)

// 队列常量
const (
	QueueDefault          = "default"
	TaskPageViewTrack     = "page_view:track"
	TaskOrderStatusNotify = "order:status_notify"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "sf"
)
